package admin

import (
	"context"
	"time"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// Connect expands rawurl into an endpoint set and cycles through it with
// randomized, bounded retry and domain filtering. It is idempotent: if
// already connected, it returns success without side effects.
func (c *Client) Connect(ctx context.Context, rawurl string) error {
	if c.driver.IsConnected() {
		return nil
	}

	endpoints, err := xrdadmin.ExpandEndpoints(rawurl)
	if err != nil {
		return err
	}

	var lastAuthMsg string
	for attempt := 0; attempt < c.cfg.FirstConnectMaxCnt; attempt++ {
		connectAttempts.Inc()
		ep, ok := c.drawAllowed(endpoints)
		if !ok {
			return xrdadmin.ErrAllDomainsDenied
		}

		if _, err := c.driver.Connect(ctx, ep); err != nil {
			c.logger.Warn("connect failed", "endpoint", ep, "err", err)
			c.sleepBetweenAttempts(ctx, attempt)
			continue
		}

		if !c.driver.GetAccessToSrv(ctx) {
			lastErr := c.driver.LastServerError()
			c.driver.Disconnect(true)
			if lastErr != nil && lastErr.Num == xrdadmin.ErrnoNotAuthorized {
				// Authorization was rejected outright: terminal once every
				// endpoint has been tried, retryable before that.
				if endpoints.Size() == 0 {
					return &xrdadmin.AuthError{Msg: trimTrailing(lastErr.Msg)}
				}
				lastAuthMsg = lastErr.Msg
			} else {
				c.logger.Warn("login handshake failed", "endpoint", ep, "err", lastErr)
			}
			c.sleepBetweenAttempts(ctx, attempt)
			continue
		}

		switch c.driver.ServerType() {
		case xrdadmin.ServerUnknown:
			c.driver.Disconnect(true)
			return xrdadmin.ErrNotConnected
		case xrdadmin.ServerRootd:
			// Connection may still be reused elsewhere; do not disconnect, but
			// this Connect call itself reports failure.
			return xrdadmin.ErrNotConnected
		default:
			return nil
		}
	}

	if lastAuthMsg != "" {
		return &xrdadmin.AuthError{Msg: trimTrailing(lastAuthMsg)}
	}
	return xrdadmin.ErrNotConnected
}

// drawAllowed draws a random endpoint, erasing any that fail domain
// filtering. Once every surviving endpoint has been drawn, the set is
// rewound so later attempts cycle through it again; only a set emptied by
// domain rejection reports failure.
func (c *Client) drawAllowed(endpoints *xrdadmin.EndpointSet) (xrdadmin.Endpoint, bool) {
	for {
		if endpoints.Size() == 0 {
			endpoints.Rewind()
			if endpoints.Size() == 0 {
				return xrdadmin.Endpoint{}, false
			}
		}
		ep, ok := endpoints.DrawRandom()
		if !ok {
			return xrdadmin.Endpoint{}, false
		}
		if c.driver.CheckHostDomain(ep.Host) {
			return ep, true
		}
		endpoints.Erase(ep)
	}
}

// sleepBetweenAttempts honors the configured reconnect timeout, skipping the
// sleep once the context is already done.
func (c *Client) sleepBetweenAttempts(ctx context.Context, attempt int) {
	if attempt+1 >= c.cfg.FirstConnectMaxCnt {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(c.cfg.ReconnectTimeout) * time.Second):
	}
}

// trimTrailing strips trailing NUL and newline bytes from an
// authentication failure message.
func trimTrailing(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		if last == '\n' || last == 0 {
			s = s[:len(s)-1]
			continue
		}
		break
	}
	return s
}
