package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrdadmin "github.com/xrootd-go/xrdadmin"

	"github.com/xrootd-go/xrdadmin/pkg/admin"
)

func TestEndToEndLocateTraversal(t *testing.T) {
	driver := NewDriver()
	driver.Protocol = 0x2a0

	driver.Script("m0.example.com:1094", xrdadmin.ReqLocate, xrdadmin.StatusOK,
		[]byte("Mw[::m1.example.com]:1094 Mw[::m2.example.com]:1094"))
	driver.Script("m1.example.com:1094", xrdadmin.ReqLocate, xrdadmin.StatusOK,
		[]byte("Sw[::d1.example.com]:1095 Sr[::d2.example.com]:1095"))
	driver.Script("m2.example.com:1094", xrdadmin.ReqLocate, xrdadmin.StatusOK,
		[]byte("Sr[::d3.example.com]:1095"))

	_, err := driver.Connect(context.Background(), xrdadmin.Endpoint{Host: "m0.example.com", Port: 1094})
	require.NoError(t, err)

	client := admin.NewClient(driver, xrdadmin.DefaultConfig(), nil)

	one, err := client.LocateOne(context.Background(), "/data/foo", true, false)
	require.NoError(t, err)
	assert.Equal(t, "d1.example.com:1095", one.Location)
	assert.True(t, one.Writable)

	all, err := client.LocateAll(context.Background(), "/data/foo", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.Equal(t, "m0.example.com:1094", driver.CurrentURL().HostPort())
}

func TestEndToEndConnectAuthFailureOnAllEndpoints(t *testing.T) {
	driver := NewDriver()
	driver.AuthResults["h1.example.com:1094"] = AuthResult{OK: false, Msg: "bad token\n"}
	driver.AuthResults["h2.example.com:1094"] = AuthResult{OK: false, Msg: "bad token\n"}

	cfg := xrdadmin.DefaultConfig()
	cfg.FirstConnectMaxCnt = 2
	cfg.ReconnectTimeout = 0
	client := admin.NewClient(driver, cfg, nil)

	err := client.Connect(context.Background(), "root://h1.example.com,h2.example.com")
	require.Error(t, err)
	assert.Equal(t, "authentication failure: bad token", err.Error())
}

func TestCheckHostDomainGlobFiltering(t *testing.T) {
	driver := NewDriver()
	driver.DomainGlobs = []string{"*.example.com"}

	assert.True(t, driver.CheckHostDomain("m0.example.com"))
	assert.False(t, driver.CheckHostDomain("m0.other.org"))
}
