package xrdadmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpointDefaultsPort(t *testing.T) {
	ep, err := ParseEndpoint("root://user@host.example.com")
	require.NoError(t, err)
	assert.Equal(t, "user", ep.User)
	assert.Equal(t, "host.example.com", ep.Host)
	assert.Equal(t, 1094, ep.Port)
	assert.Equal(t, "user@host.example.com:1094", ep.String())
}

func TestParseEndpointRejectsMalformed(t *testing.T) {
	_, err := ParseEndpoint("not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestExpandEndpointsCommaList(t *testing.T) {
	set, err := ExpandEndpoints("root://h1.example.com,h2.example.com:2094")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Size())

	seen := map[string]bool{}
	for set.Size() > 0 {
		ep, ok := set.DrawRandom()
		require.True(t, ok)
		seen[ep.HostPort()] = true
	}
	assert.True(t, seen["h1.example.com:1094"])
	assert.True(t, seen["h2.example.com:2094"])

	_, ok := set.DrawRandom()
	assert.False(t, ok)
}

func TestExpandEndpointsEmptyFails(t *testing.T) {
	_, err := ExpandEndpoints("root://")
	assert.Error(t, err)
}

func TestEndpointSetRewindAndErase(t *testing.T) {
	set, err := ExpandEndpoints("root://h1.example.com,h2.example.com")
	require.NoError(t, err)

	ep, ok := set.DrawRandom()
	require.True(t, ok)
	assert.Equal(t, 1, set.Size())

	set.Rewind()
	assert.Equal(t, 2, set.Size())

	set.Erase(ep)
	assert.Equal(t, 1, set.Size())
	set.Rewind()
	// Erase is permanent even across Rewind.
	assert.Equal(t, 1, set.Size())
}
