package xrdadmin

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeModeAllTriplets(t *testing.T) {
	for user := uint8(0); user < 8; user++ {
		for group := uint8(0); group < 8; group++ {
			for other := uint8(0); other < 8; other++ {
				mode := ComposeMode(0, user, group, other)

				assertBit(t, mode, modeUR, user&0x4 != 0)
				assertBit(t, mode, modeUW, user&0x2 != 0)
				assertBit(t, mode, modeUX, user&0x1 != 0)
				assertBit(t, mode, modeGR, group&0x4 != 0)
				assertBit(t, mode, modeGW, group&0x2 != 0)
				assertBit(t, mode, modeGX, group&0x1 != 0)
				assertBit(t, mode, modeOR, other&0x4 != 0)
				assertBit(t, mode, modeOW, other&0x2 != 0)
				assertBit(t, mode, modeOX, other&0x1 != 0)
			}
		}
	}
}

func assertBit(t *testing.T, mode, bit uint32, want bool) {
	t.Helper()
	assert.Equal(t, want, mode&bit != 0)
}

func TestComposeModeIsMonotone(t *testing.T) {
	mode := ComposeMode(0, 7, 0, 0)
	mode = ComposeMode(mode, 0, 7, 0)
	// The user bits set by the first call must survive the second call.
	assert.True(t, mode&modeUR != 0)
	assert.True(t, mode&modeUW != 0)
	assert.True(t, mode&modeUX != 0)
	assert.True(t, mode&modeGR != 0)
}

func TestParseStatVFS(t *testing.T) {
	info, err := ParseStatVFS([]byte("3 10485760 42 7 20971520 18"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.RWServers)
	assert.EqualValues(t, 10485760, info.RWFree)
	assert.EqualValues(t, 42, info.RWUtil)
	assert.EqualValues(t, 7, info.StgServers)
	assert.EqualValues(t, 20971520, info.StgFree)
	assert.EqualValues(t, 18, info.StgUtil)
}

func TestParseDirListDropsEmpties(t *testing.T) {
	entries := ParseDirList([]byte("fileA\nfileB\n\nfileC"))
	assert.Equal(t, []string{"fileA", "fileB", "fileC"}, entries)
}

func TestParseProtocolRoundTrip(t *testing.T) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint32(raw[0:4], 0x290)
	binary.BigEndian.PutUint32(raw[4:8], uint32(ServerManager))

	proto, kind, err := ParseProtocol(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 0x290, proto)
	assert.EqualValues(t, ServerManager, kind)
}

func TestParseStatXLength(t *testing.T) {
	info, err := ParseStatX([]byte{0x00, StatXIsDir, StatXOffline}, 3)
	require.NoError(t, err)
	assert.Len(t, info, 3)
	assert.False(t, info[0]&(StatXIsDir|StatXOffline|StatXOther) != 0)
	assert.True(t, info[1]&StatXIsDir != 0)
	assert.True(t, info[2]&StatXOffline != 0)
}

func TestParseStatXShortPayload(t *testing.T) {
	_, err := ParseStatX([]byte{0x00}, 3)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseLocateResponseTokensAndDropsMalformed(t *testing.T) {
	// "SwXgarbage:1094" is long enough but lacks the "[::" bracket shape;
	// "Sw[:x.example]:1" has the bracket but not the double colon. Both drop.
	infos := ParseLocateResponse([]byte("Mw[::m1.example.com]:1094 mr[::m2.example]:1 X SwXgarbage:1094 Sw[:x.example]:1"))
	require.Len(t, infos, 2)
	assert.Equal(t, InfotypeManager, infos[0].Infotype)
	assert.True(t, infos[0].Writable)
	assert.Equal(t, "m1.example.com:1094", infos[0].Location)

	assert.Equal(t, InfotypeManagerPending, infos[1].Infotype)
	assert.False(t, infos[1].Writable)
	assert.Equal(t, "m2.example:1", infos[1].Location)
}

func TestRequestHeaderMarshal(t *testing.T) {
	h := RequestHeader{StreamID: 7, ReqID: ReqStat, DataLen: 10}
	raw := h.Marshal()
	require.Len(t, raw, 8)
	assert.EqualValues(t, 7, binary.BigEndian.Uint16(raw[0:2]))
	assert.EqualValues(t, ReqStat, binary.BigEndian.Uint16(raw[2:4]))
	assert.EqualValues(t, 10, binary.BigEndian.Uint32(raw[4:8]))
}
