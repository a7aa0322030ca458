package models

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the in-memory view of who is signed in. The token itself lives
// in durable storage; Session is rehydrated from it on load.
type Session struct {
	User    *User
	IsAdmin bool
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.User.ID != ""
}
