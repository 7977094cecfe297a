package xrdadmin

import "context"

// Driver is the connection-manager capability this core requires. It
// owns the physical connection, the stream-id space, and login/auth; the
// core only ever calls it, never implements socket I/O or the security
// handshake itself.
//
// SendGenCommand has two response-delivery modes: if buf is
// non-nil, the payload is copied into it (NUL-terminated at the reported
// length, or at offset 0 if the reported length is negative) and no owned
// buffer is returned; if buf is nil, the returned []byte is a freshly
// allocated payload the caller now owns.
type Driver interface {
	Connect(ctx context.Context, ep Endpoint) (connID string, err error)
	Disconnect(closePhysical bool)
	IsConnected() bool

	// GetAccessToSrv performs the login+auth handshake. On failure it fills
	// LastServerError and returns false.
	GetAccessToSrv(ctx context.Context) bool

	// SendGenCommand transmits req (+ optional outbound data) and returns the
	// response status and payload. See type doc for the two delivery modes.
	SendGenCommand(ctx context.Context, req Request, outboundData []byte, buf []byte, opName string) (ServerResponse, []byte, error)

	SetSID(streamID *uint16)
	SetURL(ep Endpoint)
	CurrentURL() Endpoint

	ServerType() ServerType
	ServerProtocol() int

	SetRequestedDestHost(host string, port int)
	SetReqDelayedConnectState(wsec uint32)
	SetReqPauseState(wsec uint32)

	CheckHostDomain(host string) bool

	GoToAnotherServer(ctx context.Context, ep Endpoint) error
	GoBackToRedirector(ctx context.Context) error

	// ProcessAsyncResp lets the driver decide, for an asynresp message,
	// whether the dispatcher should keep propagating it to other observers.
	ProcessAsyncResp(msg UnsolicitedMessage) (propagate bool)

	LastServerError() *ServerError
	LastServerResp() (status ServerStatus, dlen int32)

	SetRedirHandler(h RedirectHandler)
}

// RedirectHandler is invoked by the driver on a transparent post-open
// redirect. This core has no open file handles, so its implementation is
// always a no-op: wasOpen is always false, and it always
// succeeds. The hook is still wired so that a future file-I/O layer sharing
// this driver would not need a new registration point.
type RedirectHandler interface {
	OpenFileWhenRedirected(newHandle string) (wasOpen bool, ok bool)
}

// NoopRedirectHandler implements [RedirectHandler] for admin-only clients:
// there is no open file to hand off, so it always reports wasOpen=false.
type NoopRedirectHandler struct{}

func (NoopRedirectHandler) OpenFileWhenRedirected(string) (bool, bool) { return false, true }

// UnsolicitedMessage is a server-initiated message delivered out of band.
// Non-Attn statuses are forwarded straight to the driver's async-response
// path; Attn messages carry an action code plus action-specific body.
type UnsolicitedMessage struct {
	Status   ServerStatus
	StreamID uint16
	Action   AttnAction
	WSec     uint32
	Host     string
	Port     int
	Payload  []byte
}

// UnsolicitedSender is the collaborator that invokes ProcessUnsolMsg on the
// dispatcher's delivery context; it is the driver's background thread in
// practice, but this core only depends on the narrow interface.
type UnsolicitedSender interface {
	Sender() Driver
}
