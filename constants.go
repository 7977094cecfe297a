package xrdadmin

// RequestID identifies the kind of request carried in a [RequestHeader].
type RequestID uint16

const (
	ReqStat      RequestID = iota // path -> id, size, flags, modtime
	ReqStatX                      // \n-joined paths -> one info byte per path
	ReqDirList                    // path -> \n-joined entry names
	ReqRm                         // path
	ReqRmdir                      // path
	ReqChmod                      // path, mode
	ReqMkdir                      // path, mode, options
	ReqMv                         // "<src> <dst>"
	ReqTruncate                   // path, offset
	ReqPrepare                    // option, priority, \n-joined paths
	ReqProtocol                   // no data segment
	ReqQuery                      // subcommand, path
	ReqLocate                     // option, path
)

// Option bytes carried in request bodies that support them.
const (
	OptStatVFS   uint8 = 0x01 // stat: report VFS (cluster) info instead of file info
	OptNoWait    uint8 = 0x01 // locate: return immediately without waiting on pending servers
	OptMkdirPath uint8 = 0x01 // mkdir: create intermediate path components
)

// QuerySubcmd identifies the query sub-operation; only checksum is used here.
type QuerySubcmd uint8

const QueryChecksum QuerySubcmd = 3

// POSIX-style mode bits, composed from user/group/other read/write/exec
// triplets (4/2/1) into protocol-defined bit positions. Composition is
// monotone: ComposeMode never clears a bit already set by an earlier call
// against the same accumulator.
const (
	modeUR uint32 = 1 << 8
	modeUW uint32 = 1 << 7
	modeUX uint32 = 1 << 6
	modeGR uint32 = 1 << 5
	modeGW uint32 = 1 << 4
	modeGX uint32 = 1 << 3
	modeOR uint32 = 1 << 2
	modeOW uint32 = 1 << 1
	modeOX uint32 = 1 << 0
)

// ComposeMode folds a (user, group, other) triplet, each in 0..7 with the
// usual 4=read/2=write/1=exec weighting, into the wire mode field. Bits
// outside the low 3 of each component are ignored. Composition only ever
// sets bits: callers accumulate onto an existing value to OR further
// triplets in without clobbering previously composed ones.
func ComposeMode(existing uint32, user, group, other uint8) uint32 {
	mode := existing
	if user&0x4 != 0 {
		mode |= modeUR
	}
	if user&0x2 != 0 {
		mode |= modeUW
	}
	if user&0x1 != 0 {
		mode |= modeUX
	}
	if group&0x4 != 0 {
		mode |= modeGR
	}
	if group&0x2 != 0 {
		mode |= modeGW
	}
	if group&0x1 != 0 {
		mode |= modeGX
	}
	if other&0x4 != 0 {
		mode |= modeOR
	}
	if other&0x2 != 0 {
		mode |= modeOW
	}
	if other&0x1 != 0 {
		mode |= modeOX
	}
	return mode
}

// StatX info-byte bits, one byte per queried path.
const (
	StatXIsDir   uint8 = 0x01
	StatXOffline uint8 = 0x02
	StatXOther   uint8 = 0x04
)

// ErrnoNotAuthorized is the server errno carried by [ServerError] when the
// login/auth handshake is rejected outright, as opposed to failing for some
// other reason.
const ErrnoNotAuthorized int32 = 3010

// ServerStatus is the status field of the server response envelope.
type ServerStatus uint16

const (
	StatusOK ServerStatus = iota
	StatusError
	StatusAuthMore
	StatusRedirect
	StatusWait
	StatusWaitResp
	StatusAttn
)

// AttnAction is the 32-bit action code carried by an StatusAttn message.
type AttnAction uint32

const (
	AttnAsyncDI   AttnAction = iota // disconnect-with-delay: reconnect after wsec
	AttnAsyncRD                     // redirect to host:port
	AttnAsyncWT                     // pause outgoing operations for wsec
	AttnAsyncGO                     // clear pause
	AttnAsyncResp                   // late response to a deferred request, matched by stream-id
)

// ServerType classifies the kind of server behind a [Driver] connection.
type ServerType int

const (
	ServerUnknown ServerType = iota
	ServerRootd
	ServerDataServer
	ServerManager
)

// LegacyProtocolVersion is the protocol version boundary below which the
// locate engine falls back to a plain Stat of the current endpoint instead
// of a cluster-wide locate.
const LegacyProtocolVersion = 0x290

// Defaults for the connect loop, overridable via [Config].
const (
	DefaultFirstConnectMaxCnt = 10
	DefaultReconnectTimeout   = 3 // seconds
)
