package xrdadmin

import (
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
)

// Endpoint is a single (host, port) candidate, with an optional user/token
// prefix carried through from the URL it was parsed from. Endpoints compare
// equal by their host:port string; the user/token prefix is informational
// only (it is handed to the driver's login/auth handshake, not compared).
type Endpoint struct {
	User string
	Host string
	Port int
}

// HostPort returns the comparable "host:port" form of the endpoint.
func (e Endpoint) HostPort() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

func (e Endpoint) String() string {
	if e.User == "" {
		return e.HostPort()
	}
	return e.User + "@" + e.HostPort()
}

// ParseEndpoint builds a single Endpoint from a "root://[user@]host[:port]"
// style URL. It is the one-candidate building block that [ExpandEndpoints]
// uses for each host of a comma list; expansion through round-robin DNS is
// the external URL-parser/DNS-resolver's job and out of scope for this core.
func ParseEndpoint(rawurl string) (Endpoint, error) {
	u, err := url.Parse(rawurl)
	if err != nil || u.Host == "" {
		return Endpoint{}, ErrInvalidURL
	}
	host := u.Hostname()
	if host == "" {
		return Endpoint{}, ErrInvalidURL
	}
	port := 1094
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return Endpoint{}, ErrInvalidURL
		}
		port = n
	}
	user := ""
	if u.User != nil {
		user = u.User.Username()
	}
	return Endpoint{User: user, Host: host, Port: port}, nil
}

// EndpointSet is an ordered-but-randomly-sampled collection of candidate
// Endpoints produced by expanding a user-supplied URL. It is only ever
// reduced during Connect (by domain rejection or exhaustion), never grown.
type EndpointSet struct {
	all   []Endpoint
	drawn map[int]bool
}

// ExpandEndpoints builds an EndpointSet from a URL that may itself denote
// multiple candidate redirectors (a comma-separated host list in the
// authority).
func ExpandEndpoints(rawurl string) (*EndpointSet, error) {
	hostPart := rawurl
	scheme := ""
	if i := strings.Index(rawurl, "://"); i >= 0 {
		scheme = rawurl[:i+3]
		hostPart = rawurl[i+3:]
	}
	userPart := ""
	if i := strings.Index(hostPart, "@"); i >= 0 {
		userPart = hostPart[:i+1]
		hostPart = hostPart[i+1:]
	}
	pathPart := ""
	if i := strings.IndexAny(hostPart, "/"); i >= 0 {
		pathPart = hostPart[i:]
		hostPart = hostPart[:i]
	}
	hosts := strings.Split(hostPart, ",")
	set := &EndpointSet{drawn: map[int]bool{}}
	for _, h := range hosts {
		if h == "" {
			continue
		}
		ep, err := ParseEndpoint(scheme + userPart + h + pathPart)
		if err != nil {
			return nil, err
		}
		set.all = append(set.all, ep)
	}
	if len(set.all) == 0 {
		return nil, ErrNoEndpoints
	}
	return set, nil
}

// Size returns the number of endpoints that can still be drawn before the
// next Rewind.
func (s *EndpointSet) Size() int {
	return len(s.all) - len(s.drawn)
}

// Rewind makes every endpoint eligible for drawing again.
func (s *EndpointSet) Rewind() {
	s.drawn = map[int]bool{}
}

// Erase permanently removes an endpoint matching ep by host:port, so it is
// never drawn again, even after Rewind.
func (s *EndpointSet) Erase(ep Endpoint) {
	kept := s.all[:0]
	for _, e := range s.all {
		if e.HostPort() != ep.HostPort() {
			kept = append(kept, e)
		}
	}
	s.all = kept
	s.drawn = map[int]bool{}
}

// DrawRandom returns a random endpoint not yet drawn since the last Rewind,
// and ok=false once the set is exhausted.
func (s *EndpointSet) DrawRandom() (ep Endpoint, ok bool) {
	remaining := s.Size()
	if remaining <= 0 {
		return Endpoint{}, false
	}
	target := rand.Intn(remaining)
	seen := 0
	for i, e := range s.all {
		if s.drawn[i] {
			continue
		}
		if seen == target {
			s.drawn[i] = true
			return e, true
		}
		seen++
	}
	return Endpoint{}, false
}
