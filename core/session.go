package core

// persisted session keys
const (
	SessionToken    = "token"
	SessionUserName = "userName"
	SessionEmail    = "email"
)

// SessionStore persists the logged in user's session.
type SessionStore interface {
	Get(key string) string
	Set(key, value string) error
	Remove(keys ...string) error
	Clear() error
}
