package xrdadmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerErrorNilReceiver(t *testing.T) {
	var e *ServerError
	assert.Equal(t, "<nil server error>", e.Error())
}

func TestServerErrorMessage(t *testing.T) {
	e := &ServerError{Num: 3011, Msg: "file not found"}
	assert.Equal(t, "file not found", e.Error())
}

func TestAuthErrorMessage(t *testing.T) {
	e := &AuthError{Msg: "bad token"}
	assert.Equal(t, "authentication failure: bad token", e.Error())
}
