// Package locate implements the cluster-wide locate traversal: a
// bounded breadth-first walk over manager redirects that resolves a path to
// the set of data servers that hold it.
package locate

import (
	"context"
	"log/slog"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// MaxLevels is the deepest expansion pass the BFS will run (levels 0
// through MaxLevels inclusive). A cluster whose managers keep redirecting
// past it is treated as misconfigured rather than walked indefinitely.
const MaxLevels = 4

// Engine runs locate traversals against a single [xrdadmin.Driver],
// restoring the driver to its original redirector after every call.
type Engine struct {
	driver xrdadmin.Driver
	logger *slog.Logger

	// LevelHook, if set, is invoked once per BFS level reached during
	// LocateAll (0-based), letting an owner record depth metrics without
	// this package depending on a metrics library itself.
	LevelHook func(level int)
}

// NewEngine creates an Engine bound to driver.
func NewEngine(driver xrdadmin.Driver, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{driver: driver, logger: logger.With("service", "[LOCATE]")}
}

// LocateAll resolves path to every data server in the cluster that holds or
// may come to hold it, breadth-first across manager redirects. The nowait
// option asks each manager to answer immediately instead of blocking on
// pending resources. LocateAll always leaves the driver pointed back at the
// original redirector, on both success and failure.
func (e *Engine) LocateAll(ctx context.Context, path string, nowait bool) ([]xrdadmin.LocateInfo, error) {
	origin := e.driver.CurrentURL()
	defer func() {
		if err := e.driver.GoBackToRedirector(ctx); err != nil {
			e.logger.Warn("failed to rewind to original redirector", "err", err)
		}
	}()

	if e.driver.ServerProtocol() < xrdadmin.LegacyProtocolVersion {
		return e.legacyLocate(ctx, path)
	}

	var (
		results  []xrdadmin.LocateInfo
		seen     = map[string]bool{}
		frontier = []xrdadmin.LocateInfo{{Infotype: xrdadmin.InfotypeManager, Location: origin.HostPort()}}
		first    = true
	)

	for level := 0; len(frontier) > 0; level++ {
		if level > MaxLevels {
			return nil, xrdadmin.ErrTooManyLevels
		}
		if e.LevelHook != nil {
			e.LevelHook(level)
		}
		var next []xrdadmin.LocateInfo
		for _, entry := range frontier {
			if !entry.Infotype.IsManager() {
				if !seen[entry.Location] {
					seen[entry.Location] = true
					results = append(results, entry)
				}
				continue
			}
			// The very first manager is the endpoint the driver is already
			// connected to; reconnecting there would tear down a live
			// connection for nothing.
			if first {
				first = false
			} else {
				ep, err := toEndpoint(entry.Location)
				if err != nil {
					e.logger.Warn("skipping malformed manager location", "location", entry.Location)
					continue
				}
				if err := e.driver.GoToAnotherServer(ctx, ep); err != nil {
					e.logger.Warn("failed to reach manager", "location", entry.Location, "err", err)
					continue
				}
			}
			req := xrdadmin.LocateRequest(path, nowait)
			resp, payload, err := e.driver.SendGenCommand(ctx, req, nil, nil, "locate")
			if err != nil {
				e.logger.Warn("locate request failed", "location", entry.Location, "err", err)
				continue
			}
			if resp.Status != xrdadmin.StatusOK {
				continue
			}
			next = append(next, xrdadmin.ParseLocateResponse(payload)...)
		}
		frontier = next
	}

	return results, nil
}

// LocateOne resolves path to a single preferred data server. With writable
// set, only a writable data-server entry satisfies the call; without it,
// any data-server entry does.
func (e *Engine) LocateOne(ctx context.Context, path string, writable, nowait bool) (xrdadmin.LocateInfo, error) {
	all, err := e.LocateAll(ctx, path, nowait)
	if err != nil {
		return xrdadmin.LocateInfo{}, err
	}
	for _, info := range all {
		if info.Infotype.IsDataServer() && (!writable || info.Writable) {
			return info, nil
		}
	}
	return xrdadmin.LocateInfo{}, xrdadmin.ErrNoDataServers
}

// legacyLocate falls back to a plain stat of the current endpoint for
// servers reporting a protocol version below [xrdadmin.LegacyProtocolVersion],
// which predates cluster-aware locate responses.
func (e *Engine) legacyLocate(ctx context.Context, path string) ([]xrdadmin.LocateInfo, error) {
	req := xrdadmin.StatRequest(xrdadmin.ReqStat, false, path)
	resp, _, err := e.driver.SendGenCommand(ctx, req, nil, nil, "stat")
	if err != nil {
		return nil, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return nil, xrdadmin.ErrMalformedResponse
	}
	cur := e.driver.CurrentURL()
	return []xrdadmin.LocateInfo{{
		Infotype: xrdadmin.InfotypeDataServer,
		Writable: true,
		Location: cur.HostPort(),
	}}, nil
}
