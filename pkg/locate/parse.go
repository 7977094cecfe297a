package locate

import (
	"strconv"
	"strings"

	xrdadmin "github.com/xrootd-go/xrdadmin"
)

// toEndpoint splits a "host:port" location string, as produced by
// [xrdadmin.ParseLocateResponse], back into an [xrdadmin.Endpoint] so the
// engine can hand it to [xrdadmin.Driver.GoToAnotherServer].
func toEndpoint(location string) (xrdadmin.Endpoint, error) {
	i := strings.LastIndex(location, ":")
	if i < 0 {
		return xrdadmin.Endpoint{}, xrdadmin.ErrMalformedResponse
	}
	host := location[:i]
	port, err := strconv.Atoi(location[i+1:])
	if err != nil || host == "" || port <= 0 {
		return xrdadmin.Endpoint{}, xrdadmin.ErrMalformedResponse
	}
	return xrdadmin.Endpoint{Host: host, Port: port}, nil
}
