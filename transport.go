// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/http2"
	"golang.org/x/net/publicsuffix"
)

// A TransportConfig describes the *http.Client a Client sends its
// requests through. It plays the part of a session configuration: it is
// supplied once, at construction, and applies to every request.
//
// Zero durations and counts mean "no limit" (or the net/http default,
// for MaxIdleConnsPerHost), exactly as on http.Transport. Start from
// DefaultTransportConfig to get sensible values.
type TransportConfig struct {
	// Timeout limits the time for a whole request, including reading
	// the response body.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// DialTimeout limits the time to establish a TCP connection.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// KeepAlive is the TCP keep-alive probe interval.
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`

	// TLSHandshakeTimeout limits the time spent on the TLS handshake.
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout" mapstructure:"tls_handshake_timeout"`

	// ResponseHeaderTimeout limits the time to wait for response
	// headers after the request is written.
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout" mapstructure:"response_header_timeout"`

	// IdleConnTimeout is how long an idle keep-alive connection stays
	// open.
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout" mapstructure:"idle_conn_timeout"`

	// MaxIdleConns limits idle connections across all hosts.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`

	// MaxIdleConnsPerHost limits idle connections per host.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`

	// MaxConnsPerHost limits connections per host, in any state.
	MaxConnsPerHost int `yaml:"max_conns_per_host" mapstructure:"max_conns_per_host"`

	// DisableKeepAlives uses each connection for a single request only.
	DisableKeepAlives bool `yaml:"disable_keep_alives" mapstructure:"disable_keep_alives"`

	// DisableCompression stops the transport from requesting gzip.
	DisableCompression bool `yaml:"disable_compression" mapstructure:"disable_compression"`

	// InsecureSkipVerify disables verification of server certificates.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`

	// Proxy is the URL of the proxy to send requests through. If empty,
	// the proxy is taken from the environment (HTTP_PROXY and friends).
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// HTTP2 enables HTTP/2 over TLS when the server offers it.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// Cookies gives the client a cookie jar, so cookies set by
	// responses are sent on later requests to the same site.
	Cookies bool `yaml:"cookies" mapstructure:"cookies"`

	// Header holds additional headers sent with every request. A header
	// the request already has, under any capitalization of its name,
	// takes precedence.
	Header map[string]string `yaml:"header" mapstructure:"header"`
}

// DefaultTransportConfig returns the configuration used by New when no
// other is given.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:             60 * time.Second,
		DialTimeout:         30 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxConnsPerHost:     6,
		HTTP2:               true,
		Cookies:             true,
	}
}

// Validate checks that the configuration is valid.
func (c *TransportConfig) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timeout", c.Timeout},
		{"dial_timeout", c.DialTimeout},
		{"keep_alive", c.KeepAlive},
		{"tls_handshake_timeout", c.TLSHandshakeTimeout},
		{"response_header_timeout", c.ResponseHeaderTimeout},
		{"idle_conn_timeout", c.IdleConnTimeout},
	}
	for _, x := range durations {
		if x.d < 0 {
			return fmt.Errorf("rest: %s must not be negative", x.name)
		}
	}
	if c.MaxIdleConns < 0 || c.MaxIdleConnsPerHost < 0 || c.MaxConnsPerHost < 0 {
		return fmt.Errorf("rest: connection limits must not be negative")
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil {
			return fmt.Errorf("rest: invalid proxy: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("rest: invalid proxy %q: scheme and host required", c.Proxy)
		}
	}
	for k := range c.Header {
		if !httpguts.ValidHeaderFieldName(k) {
			return fmt.Errorf("rest: invalid header name %q", k)
		}
	}
	return nil
}

// NewHTTPClient builds a new *http.Client, with its own transport and
// connection pool, from the configuration.
func (c TransportConfig) NewHTTPClient() (*http.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dialer := &net.Dialer{
		Timeout:   c.DialTimeout,
		KeepAlive: c.KeepAlive,
	}
	t := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		IdleConnTimeout:       c.IdleConnTimeout,
		MaxIdleConns:          c.MaxIdleConns,
		MaxIdleConnsPerHost:   c.MaxIdleConnsPerHost,
		MaxConnsPerHost:       c.MaxConnsPerHost,
		DisableKeepAlives:     c.DisableKeepAlives,
		DisableCompression:    c.DisableCompression,
	}
	if c.Proxy != "" {
		u, _ := url.Parse(c.Proxy)
		t.Proxy = http.ProxyURL(u)
	}
	if c.InsecureSkipVerify {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in
	}
	if c.HTTP2 {
		if err := http2.ConfigureTransport(t); err != nil {
			return nil, fmt.Errorf("rest: configure http2: %w", err)
		}
	}

	hc := &http.Client{
		Transport: t,
		Timeout:   c.Timeout,
	}
	if len(c.Header) > 0 {
		hc.Transport = newHeaderTransport(t, c.Header)
	}
	if c.Cookies {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("rest: cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	return hc, nil
}

// headerTransport adds default headers to requests which lack them.
type headerTransport struct {
	base   *http.Transport
	header map[string]string
}

func newHeaderTransport(base *http.Transport, header map[string]string) *headerTransport {
	h := make(map[string]string, len(header))
	for k, v := range header {
		h[k] = v
	}
	return &headerTransport{base: base, header: h}
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	var r2 *http.Request
	for k, v := range t.header {
		if hasHeader(r.Header, k) {
			continue
		}
		if r2 == nil {
			// A RoundTripper must not modify the request it is given.
			r2 = r.Clone(r.Context())
			if r2.Header == nil {
				r2.Header = make(http.Header)
			}
		}
		r2.Header.Set(k, v)
	}
	if r2 == nil {
		r2 = r
	}
	return t.base.RoundTrip(r2)
}

func (t *headerTransport) CloseIdleConnections() {
	t.base.CloseIdleConnections()
}

func hasHeader(h http.Header, key string) bool {
	for k := range h {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
