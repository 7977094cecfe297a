package admin

import (
	"context"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// bulkPrepareThreshold is the path-count below which Prepare issues a
// single call instead of chunking.
const bulkPrepareThreshold = 75

// bulkChunkSize is the window of each chunked prepare sub-call.
const bulkChunkSize = 50

// statX issues one statx call over paths and decodes it into one info byte
// per path.
func (c *Client) statX(ctx context.Context, paths []string) ([]uint8, error) {
	req := xrdadmin.StatRequest(xrdadmin.ReqStatX, false, paths...)
	resp, payload, err := c.driver.SendGenCommand(ctx, req, nil, nil, "statx")
	if err != nil {
		return nil, err
	}
	if resp.Status != xrdadmin.StatusOK {
		return nil, xrdadmin.ErrMalformedResponse
	}
	return xrdadmin.ParseStatX(payload, len(paths))
}

// ExistFiles reports, per input path, whether it exists as a regular file:
// none of {is-dir, offline, other} set on its statx info byte.
func (c *Client) ExistFiles(ctx context.Context, paths []string) ([]bool, error) {
	operationsTotal("exist_files").Inc()
	info, err := c.statX(ctx, paths)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(info))
	for i, b := range info {
		out[i] = b&(xrdadmin.StatXIsDir|xrdadmin.StatXOffline|xrdadmin.StatXOther) == 0
	}
	return out, nil
}

// ExistDirs reports, per input path, whether its statx info byte has the
// is-dir bit set.
func (c *Client) ExistDirs(ctx context.Context, paths []string) ([]bool, error) {
	operationsTotal("exist_dirs").Inc()
	info, err := c.statX(ctx, paths)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(info))
	for i, b := range info {
		out[i] = b&xrdadmin.StatXIsDir != 0
	}
	return out, nil
}

// IsFileOnline reports, per input path, whether its statx info byte has the
// offline bit clear.
func (c *Client) IsFileOnline(ctx context.Context, paths []string) ([]bool, error) {
	operationsTotal("is_file_online").Inc()
	info, err := c.statX(ctx, paths)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(info))
	for i, b := range info {
		out[i] = b&xrdadmin.StatXOffline == 0
	}
	return out, nil
}

// PrepareBulk issues Prepare over paths, chunking into overlapping windows
// of bulkChunkSize once the path count reaches bulkPrepareThreshold.
// The chunk-start index advances by 1 each iteration, clamping
// the window to what remains and stopping the moment a chunk would start at
// or past len(paths); the operation aborts on the first sub-call failure.
func (c *Client) PrepareBulk(ctx context.Context, paths []string, option, priority uint8) error {
	operationsTotal("prepare_bulk").Inc()
	if len(paths) < bulkPrepareThreshold {
		return c.Prepare(ctx, paths, option, priority)
	}
	for i := 0; i < len(paths); i++ {
		window := bulkChunkSize
		if remaining := len(paths) - i; remaining < window {
			window = remaining
		}
		chunk := paths[i : i+window]
		if err := c.Prepare(ctx, chunk, option, priority); err != nil {
			return err
		}
	}
	return nil
}
