package models

// Session is the persisted form of the authentication state: the bearer
// credential and the identity it belongs to. Token and User are either both
// present or both absent; the session store enforces the pairing.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
