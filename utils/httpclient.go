package utils

import (
	"fmt"
	"net/http"
	"time"
)

// allowListTransport rejects requests to any host outside its allow-list
// before they leave the process. Services that talk to third-party APIs get
// one of these injected instead of patching global transport state, so the
// restriction is explicit and testable.
type allowListTransport struct {
	allowed map[string]struct{}
	base    http.RoundTripper
}

func (t *allowListTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := req.URL.Hostname()
	if _, ok := t.allowed[host]; !ok {
		return nil, fmt.Errorf("blocked request to disallowed host %q", host)
	}
	return t.base.RoundTrip(req)
}

// NewAllowListClient returns an *http.Client that can only reach the given
// hosts.
func NewAllowListClient(timeout time.Duration, hosts ...string) *http.Client {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		allowed[h] = struct{}{}
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &allowListTransport{
			allowed: allowed,
			base:    http.DefaultTransport,
		},
	}
}
