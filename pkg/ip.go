package pkg

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var localDockerIPRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1$`)

// IPIsLocal reports whether the address belongs to a development setup
// (loopback or a docker bridge gateway). Port suffixes are ignored.
func IPIsLocal(ipAddr string) bool {
	host := stripPort(ipAddr)
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	return localDockerIPRegex.MatchString(host)
}

// ReadUserIP returns the caller's public IP, honouring reverse proxy headers.
// Local addresses yield a nil IP and no error.
func ReadUserIP(r *http.Request) (net.IP, error) {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		// first hop is the client
		ipAddr = strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if IPIsLocal(ipAddr) {
		return nil, nil
	}

	host := stripPort(ipAddr)
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, &InvalidIPError{Addr: ipAddr}
	}
	return ip, nil
}

type InvalidIPError struct {
	Addr string
}

func (e *InvalidIPError) Error() string {
	return "ip addr " + e.Addr + " is invalid"
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
