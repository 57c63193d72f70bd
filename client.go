// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/rest/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
//
// An HTTPDoer is shared by every request issued through a Client, so it
// must be safe for concurrent use by multiple goroutines.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// A Completion receives the outcome of a request.
//
// On success, data holds the complete response body (possibly empty but
// never nil), resp holds the response metadata, and err is nil. Any
// status code, including 4XX and 5XX, counts as success. On failure,
// err is non-nil and data is nil; resp is nil unless a response was
// received before the failure.
type Completion func(data []byte, resp *Response, err error)

const jsonContentType = "application/json"

var emptyHandlers = HandlerGroup{}

// A Client issues JSON requests against a fixed base URL.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// The client holds no mutable state of its own. There is no ordering
// between requests: completions may arrive in any order relative to the
// order the requests were issued in. There is no retry, and no way to
// cancel a request once issued; timeouts are whatever the HTTPDoer
// enforces.
type Client struct {
	baseURL  string
	doer     HTTPDoer
	handlers *HandlerGroup
}

// An Option configures a Client under construction by New.
type Option func(*options)

type options struct {
	config   *TransportConfig
	doer     HTTPDoer
	handlers *HandlerGroup
}

// WithConfig makes New build the client's HTTPDoer, an *http.Client,
// from the given transport configuration instead of from
// DefaultTransportConfig.
func WithConfig(cfg TransportConfig) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithDoer makes the client send requests through d. It may not be
// combined with WithConfig.
func WithDoer(d HTTPDoer) Option {
	return func(o *options) {
		o.doer = d
	}
}

// WithHandlers installs an event handler group in the client. The group
// must not be modified once the client is in use.
func WithHandlers(g *HandlerGroup) Option {
	return func(o *options) {
		o.handlers = g
	}
}

// New returns a client which issues requests against baseURL.
//
// The base URL is stored verbatim: it is not validated, and no slash is
// added or removed. Each request URL is the plain string concatenation
// of the base URL and the request path.
//
// Unless WithDoer is given, New creates a new *http.Client for the
// client from the transport configuration given with WithConfig, or from
// DefaultTransportConfig. An error is returned only if the transport
// configuration is invalid or the options conflict.
func New(baseURL string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doer := o.doer
	if doer != nil && o.config != nil {
		return nil, errors.New("rest: WithDoer and WithConfig are mutually exclusive")
	} else if doer == nil {
		cfg := DefaultTransportConfig()
		if o.config != nil {
			cfg = *o.config
		}
		hc, err := cfg.NewHTTPClient()
		if err != nil {
			return nil, err
		}
		doer = hc
	}

	handlers := o.handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	return &Client{
		baseURL:  baseURL,
		doer:     doer,
		handlers: handlers,
	}, nil
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET to the base URL plus path.
//
// The header mapping is sent exactly as given; no headers are added.
// Header may be nil. The request has no body.
func (c *Client) Get(path string, header map[string]string, onComplete Completion) *Call {
	e := c.start(http.MethodGet, c.baseURL+path)
	p, err := request.NewPlan(e.Method, e.URL, header)
	if err != nil {
		return c.fail(e, err, onComplete)
	}
	return c.dispatch(e, p, onComplete)
}

// Post issues a POST to the base URL plus path, with body encoded as
// JSON.
//
// Body may be any value encoding/json can marshal. It is encoded before
// Post returns; if encoding fails, onComplete is invoked with the
// *failure.EncodeError before Post returns and nothing is sent.
//
// Every entry of the header mapping is sent as given. In addition, the
// Content-Type header is set to the value of a key which equals
// "content-type" case-insensitively, or to "application/json" if there
// is no such key. A non-canonical key such as "content-type" is not
// removed, so it and the canonical Content-Type header are both sent.
func (c *Client) Post(path string, header map[string]string, body interface{}, onComplete Completion) *Call {
	return c.send(http.MethodPost, path, header, body, onComplete)
}

// Put issues a PUT to the base URL plus path, with body encoded as
// JSON. It follows the same rules as Post for encoding and for the
// Content-Type header.
func (c *Client) Put(path string, header map[string]string, body interface{}, onComplete Completion) *Call {
	return c.send(http.MethodPut, path, header, body, onComplete)
}

// Delete issues a DELETE to the base URL plus path.
//
// If body is nil, the request has no body and is shaped exactly like a
// Get. Otherwise, body is encoded as JSON following the same failure
// rules as Post, and Content-Type is set to "application/json" even if
// the header mapping contains a Content-Type of its own. Unlike Post and
// Put, Delete never honors a caller-supplied Content-Type for a body. A
// non-canonical key such as "content-type" is still sent as given, so it
// goes out alongside the canonical Content-Type, with its own value.
func (c *Client) Delete(path string, header map[string]string, body interface{}, onComplete Completion) *Call {
	e := c.start(http.MethodDelete, c.baseURL+path)
	p, err := request.NewPlan(e.Method, e.URL, header)
	if err != nil {
		return c.fail(e, err, onComplete)
	}
	e.Plan = p
	if body != nil {
		if err = p.SetJSONBody(body); err != nil {
			return c.fail(e, err, onComplete)
		}
		p.Header.Set("Content-Type", jsonContentType)
	}
	return c.dispatch(e, p, onComplete)
}

// Do issues the request described by a prebuilt plan. The plan URL is
// used as is, without the base URL. Get, Post, Put, and Delete are all
// built on the same execution logic as Do.
func (c *Client) Do(p *request.Plan, onComplete Completion) *Call {
	if p == nil {
		panic("rest: nil plan")
	}
	e := c.start(p.Method, p.URL.String())
	return c.dispatch(e, p, onComplete)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) send(method, path string, header map[string]string, body interface{}, onComplete Completion) *Call {
	e := c.start(method, c.baseURL+path)
	p, err := request.NewPlan(method, e.URL, header)
	if err != nil {
		return c.fail(e, err, onComplete)
	}
	e.Plan = p
	p.Header.Set("Content-Type", contentType(header))
	if err = p.SetJSONBody(body); err != nil {
		return c.fail(e, err, onComplete)
	}
	return c.dispatch(e, p, onComplete)
}

// start begins an execution for rawURL, which is used verbatim.
func (c *Client) start(method, rawURL string) *request.Execution {
	e := &request.Execution{
		Method: method,
		URL:    rawURL,
		Start:  time.Now(),
	}
	c.handlers.run(BeforeExecutionStart, e)
	return e
}

// fail ends an execution which never reached the transport. The
// completion runs on the calling goroutine.
func (c *Client) fail(e *request.Execution, err error, onComplete Completion) *Call {
	e.Err = err
	call := newCall(e, onComplete)
	c.finish(call)
	return call
}

func (c *Client) dispatch(e *request.Execution, p *request.Plan, onComplete Completion) *Call {
	e.Plan = p
	call := newCall(e, onComplete)
	go func() {
		c.roundTrip(e)
		c.finish(call)
	}()
	return call
}

func (c *Client) roundTrip(e *request.Execution) {
	e.Request = e.Plan.ToRequest(context.Background())
	c.handlers.run(BeforeSend, e)
	var err error
	e.Response, err = c.doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(e, err)
	} else {
		readBody(e, c.handlers)
	}
}

func readBody(e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	b, err := io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(e, err)
		return
	}
	e.Body = b
}

func (c *Client) finish(call *Call) {
	call.exec.End = time.Now()
	c.handlers.run(AfterExecutionEnd, call.exec)
	call.complete()
}

// contentType resolves the Content-Type for Post and Put. If more than
// one key matches case-insensitively, which one wins is unspecified.
func contentType(header map[string]string) string {
	for k, v := range header {
		if strings.EqualFold(k, "Content-Type") {
			return v
		}
	}
	return jsonContentType
}

// urlErrorWrap leaves transport errors which are already *url.Error
// untouched, as http.Client always returns, and wraps anything else.
func urlErrorWrap(e *request.Execution, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(e.Method),
		URL: e.URL,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
