// Package admin binds the wire codec, connect loop, unsolicited-message
// dispatcher, and locate engine into the public surface a caller actually
// uses: one Client per cluster connection.
package admin

import (
	"context"
	"log/slog"

	"github.com/xrootd-go/xrdadmin/pkg/locate"
	"github.com/xrootd-go/xrdadmin/pkg/unsol"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// Client is the thin, well-typed entry point binding the connect loop,
// simple operations, batch façade, and locate engine to one driver.
type Client struct {
	driver xrdadmin.Driver
	cfg    xrdadmin.Config
	logger *slog.Logger

	dispatcher *unsol.Dispatcher
	locator    *locate.Engine
}

// NewClient creates a Client around driver using cfg for connect-loop
// tuning. The client registers the no-op redirect handler with the driver:
// an admin-only client has no open file handles to move on a redirect.
func NewClient(driver xrdadmin.Driver, cfg xrdadmin.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", "[ADMIN]")
	driver.SetRedirHandler(xrdadmin.NoopRedirectHandler{})
	locator := locate.NewEngine(driver, logger)
	locator.LevelHook = func(level int) { locateDepthTotal.Update(float64(level)) }
	return &Client{
		driver:     driver,
		cfg:        cfg,
		logger:     logger,
		dispatcher: unsol.NewDispatcher(driver, logger),
		locator:    locator,
	}
}

// Dispatcher exposes the unsolicited-message state machine so the owner of
// the driver's background delivery context can feed it incoming messages.
func (c *Client) Dispatcher() *unsol.Dispatcher { return c.dispatcher }

// Driver returns the underlying connection driver collaborator.
func (c *Client) Driver() xrdadmin.Driver { return c.driver }

// IsConnected reports whether the underlying driver currently holds a live
// connection.
func (c *Client) IsConnected() bool { return c.driver.IsConnected() }

// LocateOne resolves path to a single preferred data server, requiring a
// writable one when writable is set. The nowait option asks managers to
// answer immediately instead of blocking on pending resources.
func (c *Client) LocateOne(ctx context.Context, path string, writable, nowait bool) (xrdadmin.LocateInfo, error) {
	operationsTotal("locate_one").Inc()
	return c.locator.LocateOne(ctx, path, writable, nowait)
}

// LocateAll resolves path to every data server in the cluster that holds it.
func (c *Client) LocateAll(ctx context.Context, path string, nowait bool) ([]xrdadmin.LocateInfo, error) {
	operationsTotal("locate_all").Inc()
	return c.locator.LocateAll(ctx, path, nowait)
}
