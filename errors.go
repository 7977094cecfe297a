// Package xrdadmin implements the administrative client core for a clustered
// object storage service: connection establishment, binary request/response
// framing, the unsolicited-message state machine, and the cluster locate
// traversal. Socket I/O, the security handshake, URL parsing/DNS resolution,
// and the data-plane file client are external collaborators, not implemented
// here; see [Driver].
package xrdadmin

import "errors"

var (
	ErrInvalidURL        = errors.New("invalid url set")
	ErrNoEndpoints       = errors.New("endpoint set is empty")
	ErrAllDomainsDenied  = errors.New("access denied to all URL domains requested")
	ErrNotConnected      = errors.New("not connected to a server")
	ErrTooManyLevels     = errors.New("cluster exposes too many levels")
	ErrNoDataServers     = errors.New("no matching data server found")
	ErrMalformedResponse = errors.New("malformed server response")
	ErrIllegalArgument   = errors.New("error in function arguments")
)

// ServerError is the terminal error surfaced by the driver's LastServerError
// slot: an xrootd errno plus a human-readable message.
type ServerError struct {
	Num int32
	Msg string
}

func (e *ServerError) Error() string {
	if e == nil {
		return "<nil server error>"
	}
	return e.Msg
}

// AuthError wraps an authentication failure message, trimmed of trailing
// NUL/newline, as surfaced by Connect when every endpoint has been tried, or
// when the attempt budget runs out after an authorization rejection.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string {
	return "authentication failure: " + e.Msg
}
