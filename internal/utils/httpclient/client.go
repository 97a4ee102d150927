// Package httpclient provides tuned HTTP clients for upstream calls.
package httpclient

import (
	"net/http"
	"sync"
	"time"
)

// New creates an HTTP client with connection reuse settings suited to the
// small set of upstream hosts this service talks to.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
		},
	}
}

var (
	shared *http.Client
	once   sync.Once
)

// Default returns the shared upstream client. A single pooled client is
// enough here: every upstream call is request-scoped and sequential.
func Default() *http.Client {
	once.Do(func() {
		shared = New(30 * time.Second)
	})
	return shared
}
