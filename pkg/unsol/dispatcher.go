// Package unsol implements the unsolicited-message state machine: the
// asynchronous disconnect-and-reconnect, redirect, pause/resume, and late
// response handling driven by server-initiated Attn messages. Dispatcher
// is invoked on the driver's background delivery context, so all of its
// state is guarded by a mutex and safe to call concurrently with outbound
// requests issued from the caller's goroutine.
package unsol

import (
	"log/slog"
	"sync"
	"time"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// Dispatcher holds the state that unsolicited messages mutate and that the
// next outgoing request must observe: the requested redirect destination,
// the pause deadline, and the delayed-reconnect deadline.
type Dispatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	requestedHost string
	requestedPort int

	pausedUntil           time.Time
	delayedReconnectUntil time.Time

	driver xrdadmin.Driver
}

// NewDispatcher creates a Dispatcher bound to driver, the collaborator whose
// async-response path and redirect bookkeeping it drives.
func NewDispatcher(driver xrdadmin.Driver, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{driver: driver, logger: logger.With("service", "[UNSOL]")}
}

// ProcessUnsolMsg classifies msg and drives dispatcher/driver state. It
// never takes ownership of msg: the first sender owns its lifecycle.
func (d *Dispatcher) ProcessUnsolMsg(msg xrdadmin.UnsolicitedMessage) (propagate bool) {
	if msg.Status != xrdadmin.StatusAttn {
		// Non-Attn unsolicited statuses go straight to the driver's
		// async-response path.
		return d.driver.ProcessAsyncResp(msg)
	}

	switch msg.Action {
	case xrdadmin.AttnAsyncDI:
		// The reconnect target is the endpoint we are being disconnected
		// from, not anything carried in the message body.
		cur := d.driver.CurrentURL()
		d.mu.Lock()
		d.delayedReconnectUntil = time.Now().Add(time.Duration(msg.WSec) * time.Second)
		d.requestedHost = cur.Host
		d.requestedPort = cur.Port
		d.mu.Unlock()
		d.driver.SetRequestedDestHost(cur.Host, cur.Port)
		d.driver.SetReqDelayedConnectState(msg.WSec)
		d.logger.Debug("async disconnect, delayed reconnect armed", "wsec", msg.WSec)
		return true

	case xrdadmin.AttnAsyncRD:
		if msg.Host == "" {
			return true
		}
		d.mu.Lock()
		d.requestedHost = msg.Host
		d.requestedPort = msg.Port
		d.mu.Unlock()
		d.driver.SetRequestedDestHost(msg.Host, msg.Port)
		d.logger.Debug("async redirect", "host", msg.Host, "port", msg.Port)
		return true

	case xrdadmin.AttnAsyncWT:
		d.mu.Lock()
		d.pausedUntil = time.Now().Add(time.Duration(msg.WSec) * time.Second)
		d.mu.Unlock()
		d.driver.SetReqPauseState(msg.WSec)
		d.logger.Debug("paused", "wsec", msg.WSec)
		return true

	case xrdadmin.AttnAsyncGO:
		d.mu.Lock()
		d.pausedUntil = time.Time{}
		d.mu.Unlock()
		d.driver.SetReqPauseState(0)
		d.logger.Debug("resumed")
		return true

	case xrdadmin.AttnAsyncResp:
		// Late response to a deferred request: the driver matches it by
		// stream-id against its pending-request table and decides whether
		// other observers still get to see it.
		return d.driver.ProcessAsyncResp(msg)

	default:
		d.logger.Warn("unknown attn action", "action", msg.Action)
		return true
	}
}

// Paused reports whether outgoing operations should currently stall, and for
// how much longer.
func (d *Dispatcher) Paused() (bool, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pausedUntil.IsZero() {
		return false, 0
	}
	remaining := time.Until(d.pausedUntil)
	if remaining <= 0 {
		d.pausedUntil = time.Time{}
		return false, 0
	}
	return true, remaining
}

// DelayedReconnect reports whether a delayed reconnect is currently armed,
// and for how much longer.
func (d *Dispatcher) DelayedReconnect() (bool, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.delayedReconnectUntil.IsZero() {
		return false, 0
	}
	remaining := time.Until(d.delayedReconnectUntil)
	if remaining <= 0 {
		d.delayedReconnectUntil = time.Time{}
		return false, 0
	}
	return true, remaining
}

// RequestedDest returns the redirect destination most recently set by an
// asyncdi/asyncrd message, if any.
func (d *Dispatcher) RequestedDest() (host string, port int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.requestedHost == "" {
		return "", 0, false
	}
	return d.requestedHost, d.requestedPort, true
}

// ClearRequestedDest clears the redirect destination once the caller has
// acted on it.
func (d *Dispatcher) ClearRequestedDest() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requestedHost = ""
	d.requestedPort = 0
}
