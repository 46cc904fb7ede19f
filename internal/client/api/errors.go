package api

import (
	"errors"
	"fmt"
)

// Kind classifies a boundary failure. The remote service reports failures in
// several shapes; they are normalized into a single tagged error the moment
// they are received, before entering any store.
type Kind string

const (
	// KindAuth covers bad credentials and expired/absent sessions.
	KindAuth Kind = "auth"
	// KindNetwork covers transport failures: the request never produced an
	// HTTP response.
	KindNetwork Kind = "network"
	// KindValidation covers client-side form-shape rejections that never
	// reach the network.
	KindValidation Kind = "validation"
	// KindServer covers non-2xx responses carrying a message body.
	KindServer Kind = "server"
)

// Error is the normalized boundary error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" if err is not a boundary error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsServer(err error) bool     { return KindOf(err) == KindServer }
