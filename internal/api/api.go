// Package api exposes one typed binding per backend area. Every response is
// decoded into an explicit schema; a success:false envelope becomes a
// BusinessError carrying the server's message.
package api

import (
	"github.com/Rotimanchase/byc-storefront/internal/httpclient"
)

type API struct {
	http *httpclient.Client
}

func New(client *httpclient.Client) *API {
	return &API{http: client}
}

// envelope is the backend's common response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// err converts a success:false envelope into a BusinessError, preferring the
// server's message over the generic fallback.
func (e envelope) err(fallback string) error {
	msg := e.Message
	if msg == "" {
		msg = fallback
	}
	return &BusinessError{Message: msg}
}

// BusinessError is a server-reported failure (insufficient stock, invalid
// address, ...) surfaced verbatim to the user.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }
