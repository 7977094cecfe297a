// Package fixture provides an in-memory reference implementation of
// [xrdadmin.Driver], canned with scripted responses keyed by endpoint and
// request kind. It exists to let tests and cmd/xrdadmin's --script mode
// exercise the core without a real socket or security handshake.
package fixture

import (
	"context"
	"sync"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// Response is one canned reply for a given request kind at a given
// endpoint.
type Response struct {
	Status  xrdadmin.ServerStatus
	Payload []byte
}

// AuthResult scripts the outcome of GetAccessToSrv for an endpoint. A zero
// Num on a failed result defaults to [xrdadmin.ErrnoNotAuthorized].
type AuthResult struct {
	OK  bool
	Num int32
	Msg string
}

// Driver is the scripted [xrdadmin.Driver]. Zero value is usable; populate
// the exported maps before use.
type Driver struct {
	mu sync.Mutex

	// Responses maps "host:port" -> request id -> canned response.
	Responses map[string]map[xrdadmin.RequestID]Response
	// AuthResults maps "host:port" -> scripted login outcome. Missing
	// entries default to success, matching the admin package's own
	// scripted driver convention.
	AuthResults map[string]AuthResult
	// ServerTypes maps "host:port" -> reported server type; missing
	// entries default to [xrdadmin.ServerManager].
	ServerTypes map[string]xrdadmin.ServerType
	// DomainGlobs restricts CheckHostDomain to hosts matching at least one
	// pattern; empty means allow everything.
	DomainGlobs []string

	Protocol int

	current   xrdadmin.Endpoint
	origin    xrdadmin.Endpoint
	connID    string
	connected bool
	lastErr   *xrdadmin.ServerError

	globs []glob.Glob
}

// NewDriver returns an empty, ready-to-script Driver.
func NewDriver() *Driver {
	return &Driver{
		Responses:   map[string]map[xrdadmin.RequestID]Response{},
		AuthResults: map[string]AuthResult{},
		ServerTypes: map[string]xrdadmin.ServerType{},
		Protocol:    xrdadmin.LegacyProtocolVersion,
	}
}

// compileGlobs lazily compiles DomainGlobs; malformed patterns are skipped.
func (d *Driver) compileGlobs() []glob.Glob {
	if d.globs != nil || len(d.DomainGlobs) == 0 {
		return d.globs
	}
	d.globs = make([]glob.Glob, 0, len(d.DomainGlobs))
	for _, pattern := range d.DomainGlobs {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		d.globs = append(d.globs, g)
	}
	return d.globs
}

func (d *Driver) Connect(_ context.Context, ep xrdadmin.Endpoint) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = ep
	if d.origin == (xrdadmin.Endpoint{}) {
		d.origin = ep
	}
	d.connID = uuid.NewString()
	d.connected = true
	return d.connID, nil
}

func (d *Driver) Disconnect(bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
}

func (d *Driver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

func (d *Driver) GetAccessToSrv(context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	result, ok := d.AuthResults[d.current.HostPort()]
	if !ok {
		return true
	}
	if !result.OK {
		num := result.Num
		if num == 0 {
			num = xrdadmin.ErrnoNotAuthorized
		}
		d.lastErr = &xrdadmin.ServerError{Num: num, Msg: result.Msg}
	}
	return result.OK
}

func (d *Driver) SendGenCommand(_ context.Context, req xrdadmin.Request, _ []byte, buf []byte, _ string) (xrdadmin.ServerResponse, []byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	byReq, ok := d.Responses[d.current.HostPort()]
	if !ok {
		return xrdadmin.ServerResponse{Status: xrdadmin.StatusError}, nil, xrdadmin.ErrNotConnected
	}
	resp, ok := byReq[req.Header.ReqID]
	if !ok {
		return xrdadmin.ServerResponse{Status: xrdadmin.StatusError}, nil, xrdadmin.ErrNotConnected
	}
	if buf != nil {
		n := copy(buf, resp.Payload)
		return xrdadmin.ServerResponse{Status: resp.Status, DataLen: int32(len(resp.Payload))}, buf[:n], nil
	}
	return xrdadmin.ServerResponse{Status: resp.Status, DataLen: int32(len(resp.Payload))}, resp.Payload, nil
}

func (d *Driver) SetSID(*uint16) {}

func (d *Driver) SetURL(ep xrdadmin.Endpoint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = ep
}

func (d *Driver) CurrentURL() xrdadmin.Endpoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Driver) ServerType() xrdadmin.ServerType {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.ServerTypes[d.current.HostPort()]; ok {
		return t
	}
	return xrdadmin.ServerManager
}

func (d *Driver) ServerProtocol() int { return d.Protocol }

func (d *Driver) SetRequestedDestHost(string, int) {}
func (d *Driver) SetReqDelayedConnectState(uint32) {}
func (d *Driver) SetReqPauseState(uint32) {}

// CheckHostDomain reports whether host matches at least one of DomainGlobs;
// an empty DomainGlobs allows every host.
func (d *Driver) CheckHostDomain(host string) bool {
	globs := d.compileGlobs()
	if len(globs) == 0 {
		return true
	}
	for _, g := range globs {
		if g.Match(host) {
			return true
		}
	}
	return false
}

func (d *Driver) GoToAnotherServer(_ context.Context, ep xrdadmin.Endpoint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = ep
	return nil
}

func (d *Driver) GoBackToRedirector(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = d.origin
	return nil
}

func (d *Driver) ProcessAsyncResp(xrdadmin.UnsolicitedMessage) bool { return true }

func (d *Driver) LastServerError() *xrdadmin.ServerError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *Driver) LastServerResp() (xrdadmin.ServerStatus, int32) {
	return xrdadmin.StatusOK, 0
}

func (d *Driver) SetRedirHandler(xrdadmin.RedirectHandler) {}

// Script registers a canned response for reqID at endpoint.
func (d *Driver) Script(endpoint string, reqID xrdadmin.RequestID, status xrdadmin.ServerStatus, payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Responses[endpoint] == nil {
		d.Responses[endpoint] = map[xrdadmin.RequestID]Response{}
	}
	d.Responses[endpoint][reqID] = Response{Status: status, Payload: payload}
}
