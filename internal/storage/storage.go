// Package storage is the durable key-value port standing in for the
// browser's local storage. Tokens, seen-sets and the recently-viewed cache
// live behind it so tests can swap in an in-memory store.
package storage

import "encoding/json"

// Well-known keys.
const (
	KeyToken          = "token"
	KeyAdminToken     = "adminToken"
	KeyRecentlyViewed = "recentlyViewed"
	KeyViewedBlogs    = "viewedBlogs"
	KeyLikedBlogs     = "likedBlogs"
	KeyDeviceID       = "deviceId"
	KeyPendingOrderID = "pendingOrderId"
	KeyOrderTotal     = "orderTotal"
)

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// GetStringSlice decodes a JSON string-list value. Missing or malformed
// values yield an empty list, matching how the original treated corrupt
// local storage entries.
func GetStringSlice(s Store, key string) []string {
	raw, ok := s.Get(key)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func SetStringSlice(s Store, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.Set(key, string(raw))
}
