package xrdadmin

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// RequestHeader is the fixed-layout header prefixing every outbound request:
// a per-connection stream id assigned by the [Driver], the request kind, and
// the length of the variable-length data segment that follows. All
// multi-byte numeric fields are network byte order on the wire; this struct
// holds them in host order, and [RequestHeader.Marshal] performs the
// conversion.
type RequestHeader struct {
	StreamID uint16
	ReqID    RequestID
	DataLen  uint32
}

// Marshal serializes the header in wire order: stream-id (16-bit),
// request-id (16-bit), data length (32-bit, network byte order).
func (h RequestHeader) Marshal() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint16(buf[0:2], h.StreamID)
	binary.BigEndian.PutUint16(buf[2:4], uint16(h.ReqID))
	binary.BigEndian.PutUint32(buf[4:8], h.DataLen)
	return buf
}

// Request bundles a header with its request-specific fixed body and its
// variable-length data segment, ready for [Driver.SendGenCommand].
type Request struct {
	Header RequestHeader
	Body   []byte // request-specific fixed fields, already in wire order
	Data   []byte // variable-length data segment
}

func newRequest(id RequestID, body []byte, data []byte) Request {
	return Request{
		Header: RequestHeader{ReqID: id, DataLen: uint32(len(data))},
		Body:   body,
		Data:   data,
	}
}

// StatRequest builds a stat (or statx) request; the data segment carries the
// path (stat) or the `\n`-joined path list (statx).
func StatRequest(id RequestID, optVFS bool, paths ...string) Request {
	opt := uint8(0)
	if optVFS {
		opt = OptStatVFS
	}
	return newRequest(id, []byte{opt}, []byte(strings.Join(paths, "\n")))
}

// MkdirRequest builds a mkdir request, optionally
// creating intermediate path components.
func MkdirRequest(path string, mode uint32, mkpath bool) Request {
	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:4], mode)
	if mkpath {
		body[4] = OptMkdirPath
	}
	return newRequest(ReqMkdir, body, []byte(path))
}

// ChmodRequest builds a chmod request.
func ChmodRequest(path string, mode uint32) Request {
	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, mode)
	return newRequest(ReqChmod, body, []byte(path))
}

// RmRequest builds an rm (unlink) request.
func RmRequest(path string) Request { return newRequest(ReqRm, nil, []byte(path)) }

// RmdirRequest builds an rmdir request.
func RmdirRequest(path string) Request { return newRequest(ReqRmdir, nil, []byte(path)) }

// TruncateRequest builds a truncate request carrying the new 64-bit size.
func TruncateRequest(path string, size int64) Request {
	body := make([]byte, 8)
	binary.BigEndian.PutUint64(body, uint64(size))
	return newRequest(ReqTruncate, body, []byte(path))
}

// MvRequest builds an mv request; data segment is "<src> <dst>".
func MvRequest(src, dst string) Request {
	return newRequest(ReqMv, nil, []byte(src+" "+dst))
}

// PrepareRequest builds a single prepare request over a `\n`-joined path list.
func PrepareRequest(option, priority uint8, paths []string) Request {
	body := []byte{option, priority}
	return newRequest(ReqPrepare, body, []byte(strings.Join(paths, "\n")))
}

// ProtocolRequest builds a protocol request; it has no data segment.
func ProtocolRequest() Request { return newRequest(ReqProtocol, nil, nil) }

// ChecksumRequest builds a query(cksum) request.
func ChecksumRequest(path string) Request {
	return newRequest(ReqQuery, []byte{uint8(QueryChecksum)}, []byte(path))
}

// DirListRequest builds a dirlist request.
func DirListRequest(path string) Request { return newRequest(ReqDirList, nil, []byte(path)) }

// LocateRequest builds a locate request, optionally with the nowait option.
func LocateRequest(path string, nowait bool) Request {
	opt := uint8(0)
	if nowait {
		opt = OptNoWait
	}
	return newRequest(ReqLocate, []byte{opt}, []byte(path))
}

// ServerResponse is the envelope every server reply carries: status, the
// reported data length, and the optional payload itself.
type ServerResponse struct {
	Status  ServerStatus
	DataLen int32
	Data    []byte
}

// ParseStat decodes a stat response payload of the form
// "%ld %lld %ld %ld" -> id, size, flags, modtime.
func ParseStat(payload []byte) (id int64, size int64, flags int64, modtime int64, err error) {
	fields := strings.Fields(string(payload))
	if len(fields) < 4 {
		return 0, 0, 0, 0, ErrMalformedResponse
	}
	vals := make([]int64, 4)
	for i := 0; i < 4; i++ {
		v, perr := strconv.ParseInt(fields[i], 10, 64)
		if perr != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: field %d: %v", ErrMalformedResponse, i, perr)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// StatVFSInfo is the decoded response of a stat(vfs) call.
type StatVFSInfo struct {
	RWServers  int32
	RWFree     int64
	RWUtil     int32
	StgServers int32
	StgFree    int64
	StgUtil    int32
}

// ParseStatVFS decodes "%d %lld %d %d %lld %d".
func ParseStatVFS(payload []byte) (StatVFSInfo, error) {
	fields := strings.Fields(string(payload))
	if len(fields) < 6 {
		return StatVFSInfo{}, ErrMalformedResponse
	}
	parseInt := func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }
	rwServers, err := parseInt(fields[0])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	rwFree, err := parseInt(fields[1])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	rwUtil, err := parseInt(fields[2])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	stgServers, err := parseInt(fields[3])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	stgFree, err := parseInt(fields[4])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	stgUtil, err := parseInt(fields[5])
	if err != nil {
		return StatVFSInfo{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return StatVFSInfo{
		RWServers:  int32(rwServers),
		RWFree:     rwFree,
		RWUtil:     int32(rwUtil),
		StgServers: int32(stgServers),
		StgFree:    stgFree,
		StgUtil:    int32(stgUtil),
	}, nil
}

// ParseDirList splits a dirlist payload on `\n`, trims, and discards empty
// entries.
func ParseDirList(payload []byte) []string {
	raw := strings.Split(string(payload), "\n")
	entries := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.TrimSpace(e)
		if e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseProtocol decodes the 8-byte protocol response: two 32-bit
// network-byte-order integers, protocol version and server kind.
func ParseProtocol(payload []byte) (proto uint32, kind uint32, err error) {
	if len(payload) < 8 {
		return 0, 0, ErrMalformedResponse
	}
	proto = binary.BigEndian.Uint32(payload[0:4])
	kind = binary.BigEndian.Uint32(payload[4:8])
	return proto, kind, nil
}

// ParseStatX decodes a statx response into one info byte per input path.
func ParseStatX(payload []byte, nPaths int) ([]uint8, error) {
	if len(payload) < nPaths {
		return nil, ErrMalformedResponse
	}
	out := make([]uint8, nPaths)
	copy(out, payload[:nPaths])
	return out, nil
}

// parseLocateType maps the leading type character of a locate token
// (T in {S,s,M,m}) to an [Infotype].
func parseLocateType(c byte) (Infotype, bool) {
	switch c {
	case 'S':
		return InfotypeDataServer, true
	case 's':
		return InfotypeDataServerPending, true
	case 'M':
		return InfotypeManager, true
	case 'm':
		return InfotypeManagerPending, true
	default:
		return 0, false
	}
}

// ParseLocateResponse tokenizes a locate response payload into [LocateInfo]
// entries. Tokens shorter than 8 bytes, or not shaped "T[c][::host]:port",
// are silently dropped as malformed.
func ParseLocateResponse(payload []byte) []LocateInfo {
	tokens := strings.Fields(string(payload))
	var out []LocateInfo
	for _, tok := range tokens {
		if len(tok) < 8 || !strings.HasPrefix(tok[2:], "[::") || !strings.Contains(tok, "]:") {
			continue
		}
		infotype, ok := parseLocateType(tok[0])
		if !ok {
			continue
		}
		writable := tok[1] == 'w'
		// Strip the leading "T[c][::" (already consumed T and c above, so
		// just "[::" remains) and the "]" that closes the host mention,
		// collapsing "[::host]:port" into "host:port".
		rest := strings.TrimPrefix(tok[2:], "[::")
		rest = strings.Replace(rest, "]", "", 1)
		out = append(out, LocateInfo{Infotype: infotype, Writable: writable, Location: rest})
	}
	return out
}
