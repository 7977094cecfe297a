package admin

import (
	"context"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// Stat returns (id, size, flags, modtime) for path. On a non-ok status it
// returns zeros rather than an error.
func (c *Client) Stat(ctx context.Context, path string) (id, size, flags, modtime int64, err error) {
	operationsTotal("stat").Inc()
	req := xrdadmin.StatRequest(xrdadmin.ReqStat, false, path)
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "stat")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return 0, 0, 0, 0, nil
	}
	return xrdadmin.ParseStat(payload)
}

// StatVFS returns cluster-level space/server-utilization info for path.
func (c *Client) StatVFS(ctx context.Context, path string) (xrdadmin.StatVFSInfo, error) {
	operationsTotal("statvfs").Inc()
	req := xrdadmin.StatRequest(xrdadmin.ReqStat, true, path)
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "statvfs")
	if err != nil {
		return xrdadmin.StatVFSInfo{}, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return xrdadmin.StatVFSInfo{}, xrdadmin.ErrMalformedResponse
	}
	return xrdadmin.ParseStatVFS(payload)
}

// Mkdir creates path, composing mode from (user, group, other) 4/2/1
// triplets, optionally creating intermediate path components.
func (c *Client) Mkdir(ctx context.Context, path string, user, group, other uint8, mkpath bool) error {
	operationsTotal("mkdir").Inc()
	mode := xrdadmin.ComposeMode(0, user, group, other)
	req := xrdadmin.MkdirRequest(path, mode, mkpath)
	return c.sendAndCheck(ctx, req, "mkdir")
}

// Chmod composes a new mode for path from (user, group, other) triplets.
func (c *Client) Chmod(ctx context.Context, path string, user, group, other uint8) error {
	operationsTotal("chmod").Inc()
	mode := xrdadmin.ComposeMode(0, user, group, other)
	req := xrdadmin.ChmodRequest(path, mode)
	return c.sendAndCheck(ctx, req, "chmod")
}

// Rm removes path.
func (c *Client) Rm(ctx context.Context, path string) error {
	operationsTotal("rm").Inc()
	return c.sendAndCheck(ctx, xrdadmin.RmRequest(path), "rm")
}

// Rmdir removes the empty directory at path.
func (c *Client) Rmdir(ctx context.Context, path string) error {
	operationsTotal("rmdir").Inc()
	return c.sendAndCheck(ctx, xrdadmin.RmdirRequest(path), "rmdir")
}

// Truncate resizes path to size bytes.
func (c *Client) Truncate(ctx context.Context, path string, size int64) error {
	operationsTotal("truncate").Inc()
	return c.sendAndCheck(ctx, xrdadmin.TruncateRequest(path, size), "truncate")
}

// Mv renames src to dst.
func (c *Client) Mv(ctx context.Context, src, dst string) error {
	operationsTotal("mv").Inc()
	return c.sendAndCheck(ctx, xrdadmin.MvRequest(src, dst), "mv")
}

// DirList lists the entries of the directory at path.
func (c *Client) DirList(ctx context.Context, path string) ([]string, error) {
	operationsTotal("dirlist").Inc()
	req := xrdadmin.DirListRequest(path)
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "dirlist")
	if err != nil {
		return nil, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return nil, xrdadmin.ErrMalformedResponse
	}
	return xrdadmin.ParseDirList(payload), nil
}

// Checksum returns the raw checksum payload for path, exactly as the server
// sent it; the caller owns interpreting its contents.
func (c *Client) Checksum(ctx context.Context, path string) ([]byte, error) {
	operationsTotal("checksum").Inc()
	req := xrdadmin.ChecksumRequest(path)
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "checksum")
	if err != nil {
		return nil, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return nil, xrdadmin.ErrMalformedResponse
	}
	return payload, nil
}

// Protocol returns the server's protocol version and server-kind code.
func (c *Client) Protocol(ctx context.Context) (proto, kind uint32, err error) {
	operationsTotal("protocol").Inc()
	req := xrdadmin.ProtocolRequest()
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "protocol")
	if err != nil {
		return 0, 0, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return 0, 0, xrdadmin.ErrMalformedResponse
	}
	return xrdadmin.ParseProtocol(payload)
}

// Prepare issues a single prepare call over paths.
func (c *Client) Prepare(ctx context.Context, paths []string, option, priority uint8) error {
	operationsTotal("prepare").Inc()
	req := xrdadmin.PrepareRequest(option, priority, paths)
	return c.sendAndCheck(ctx, req, "prepare")
}

// sendAndCheck issues req and translates a non-ok status into
// ErrMalformedResponse; transport errors pass through unchanged.
func (c *Client) sendAndCheck(ctx context.Context, req xrdadmin.Request, opName string) error {
	resp, _, err := c.driver.SendGenCommand(ctx, req, nil, nil, opName)
	if err != nil {
		return err
	}
	if resp.Status != xrdadmin.StatusOK {
		return xrdadmin.ErrMalformedResponse
	}
	return nil
}
