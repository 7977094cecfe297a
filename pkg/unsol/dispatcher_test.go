package unsol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// recordingDriver captures the calls the dispatcher makes on it so tests can
// assert on dispatch behaviour without any real connection.
type recordingDriver struct {
	pauseWSec      uint32
	delayWSec      uint32
	destHost       string
	destPort       int
	asyncRespCalls int
	propagate      bool
}

func (d *recordingDriver) Connect(context.Context, xrdadmin.Endpoint) (string, error) { return "", nil }
func (d *recordingDriver) Disconnect(bool) {}
func (d *recordingDriver) IsConnected() bool { return true }
func (d *recordingDriver) GetAccessToSrv(context.Context) bool { return true }
func (d *recordingDriver) SendGenCommand(context.Context, xrdadmin.Request, []byte, []byte, string) (xrdadmin.ServerResponse, []byte, error) {
	return xrdadmin.ServerResponse{}, nil, nil
}
func (d *recordingDriver) SetSID(*uint16) {}
func (d *recordingDriver) SetURL(xrdadmin.Endpoint) {}
func (d *recordingDriver) CurrentURL() xrdadmin.Endpoint {
	return xrdadmin.Endpoint{Host: "m0.example.com", Port: 1094}
}
func (d *recordingDriver) ServerType() xrdadmin.ServerType { return xrdadmin.ServerManager }
func (d *recordingDriver) ServerProtocol() int { return xrdadmin.LegacyProtocolVersion }

func (d *recordingDriver) SetRequestedDestHost(host string, port int) {
	d.destHost, d.destPort = host, port
}
func (d *recordingDriver) SetReqDelayedConnectState(wsec uint32) { d.delayWSec = wsec }
func (d *recordingDriver) SetReqPauseState(wsec uint32) { d.pauseWSec = wsec }
func (d *recordingDriver) CheckHostDomain(string) bool { return true }

func (d *recordingDriver) GoToAnotherServer(context.Context, xrdadmin.Endpoint) error { return nil }
func (d *recordingDriver) GoBackToRedirector(context.Context) error { return nil }

func (d *recordingDriver) ProcessAsyncResp(xrdadmin.UnsolicitedMessage) bool {
	d.asyncRespCalls++
	return d.propagate
}

func (d *recordingDriver) LastServerError() *xrdadmin.ServerError { return nil }
func (d *recordingDriver) LastServerResp() (xrdadmin.ServerStatus, int32) { return xrdadmin.StatusOK, 0 }
func (d *recordingDriver) SetRedirHandler(xrdadmin.RedirectHandler) {}

func TestProcessUnsolMsgAsyncDIArmsReconnect(t *testing.T) {
	driver := &recordingDriver{}
	d := NewDispatcher(driver, nil)

	propagate := d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{
		Status: xrdadmin.StatusAttn,
		Action: xrdadmin.AttnAsyncDI,
		WSec:   5,
	})
	assert.True(t, propagate)
	assert.EqualValues(t, 5, driver.delayWSec)

	armed, remaining := d.DelayedReconnect()
	assert.True(t, armed)
	assert.Greater(t, remaining.Seconds(), 0.0)

	// The reconnect destination is the endpoint the driver is currently on.
	host, port, ok := d.RequestedDest()
	assert.True(t, ok)
	assert.Equal(t, "m0.example.com", host)
	assert.Equal(t, 1094, port)
	assert.Equal(t, "m0.example.com", driver.destHost)
}

func TestProcessUnsolMsgAsyncRDSetsDestination(t *testing.T) {
	driver := &recordingDriver{}
	d := NewDispatcher(driver, nil)

	d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{
		Status: xrdadmin.StatusAttn,
		Action: xrdadmin.AttnAsyncRD,
		Host:   "m2.example.com",
		Port:   2094,
	})
	assert.Equal(t, "m2.example.com", driver.destHost)
	assert.Equal(t, 2094, driver.destPort)
}

func TestProcessUnsolMsgPauseAndResume(t *testing.T) {
	driver := &recordingDriver{}
	d := NewDispatcher(driver, nil)

	d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{Status: xrdadmin.StatusAttn, Action: xrdadmin.AttnAsyncWT, WSec: 3})
	paused, remaining := d.Paused()
	assert.True(t, paused)
	assert.Greater(t, remaining.Seconds(), 0.0)
	assert.EqualValues(t, 3, driver.pauseWSec)

	d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{Status: xrdadmin.StatusAttn, Action: xrdadmin.AttnAsyncGO})
	paused, _ = d.Paused()
	assert.False(t, paused)
	assert.EqualValues(t, 0, driver.pauseWSec)
}

func TestProcessUnsolMsgAsyncRespDelegatesToDriver(t *testing.T) {
	driver := &recordingDriver{propagate: false}
	d := NewDispatcher(driver, nil)

	propagate := d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{Status: xrdadmin.StatusAttn, Action: xrdadmin.AttnAsyncResp})
	assert.False(t, propagate)
	assert.Equal(t, 1, driver.asyncRespCalls)
}

func TestProcessUnsolMsgNonAttnGoesStraightToDriver(t *testing.T) {
	driver := &recordingDriver{propagate: true}
	d := NewDispatcher(driver, nil)

	propagate := d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{Status: xrdadmin.StatusWaitResp})
	assert.True(t, propagate)
	assert.Equal(t, 1, driver.asyncRespCalls)
}

func TestProcessUnsolMsgUnknownActionLogsAndPropagates(t *testing.T) {
	driver := &recordingDriver{}
	d := NewDispatcher(driver, nil)

	propagate := d.ProcessUnsolMsg(xrdadmin.UnsolicitedMessage{Status: xrdadmin.StatusAttn, Action: xrdadmin.AttnAction(99)})
	assert.True(t, propagate)
}
