// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

// A Plan describes a single HTTP request for execution by a client.
//
// The field structure of Plan mirrors the structure of the lower-level
// http.Request, minus everything that does not apply to a buffered,
// fire-and-forget JSON request.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, DELETE, etc.).
	Method string

	// URL specifies the URL to access. It is the parsed form of the
	// string passed to NewPlan.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent by the
	// client.
	//
	// NewPlan stores the caller's keys as given, without
	// canonicalization, so the outgoing header set equals the caller's
	// mapping. Keys added later with Header.Set are canonicalized as
	// usual, which means a non-canonical key and its canonical form may
	// both be present.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent, for example
	// on a GET or bodyless DELETE request.
	Body []byte
}

// NewPlan returns a new Plan given a method, URL, and header mapping.
//
// An empty method means GET. The URL is parsed with url.Parse, and any
// parse error (a *url.Error) is returned unchanged. Header may be nil.
func NewPlan(method, url string, header map[string]string) (*Plan, error) {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("rest/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	h := make(http.Header, len(header))
	for k, v := range header {
		h[k] = []string{v}
	}
	return &Plan{
		Method: method,
		URL:    u,
		Header: h,
	}, nil
}

// SetJSONBody encodes v as JSON and stores the result as the plan body.
//
// If v cannot be encoded, the body is left unchanged and the returned
// error is a *failure.EncodeError.
func (p *Plan) SetJSONBody(v interface{}) error {
	b, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	p.Body = b
	return nil
}

// ToRequest creates an HTTP request corresponding to the given request
// plan. The context of the new request is set to ctx, which may not be
// nil.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	r.Host = p.URL.Host
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// validMethod reports whether method is a token as defined in
// https://tools.ietf.org/html/rfc7230#section-3.2.6. The empty string
// is interpreted as GET before this check.
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
