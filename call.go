// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

import (
	"net/http"
	"net/url"

	"github.com/gogama/rest/request"
)

// A Response holds the metadata of an HTTP response. The response body
// is delivered separately, fully buffered, as the data argument of the
// Completion.
type Response struct {
	// Status is the status line text, e.g. "200 OK".
	Status string

	// StatusCode is the numeric status code, e.g. 200.
	StatusCode int

	// Proto is the protocol, e.g. "HTTP/1.1" or "HTTP/2.0".
	Proto string

	// Header holds the response headers.
	Header http.Header

	// ContentLength records the length of the body as reported by the
	// server, or -1 if unknown.
	ContentLength int64

	// URL is the URL of the request that produced the response. It
	// differs from the requested URL if the HTTPDoer followed
	// redirects.
	URL *url.URL
}

func newResponse(r *http.Response) *Response {
	if r == nil {
		return nil
	}

	resp := &Response{
		Status:        r.Status,
		StatusCode:    r.StatusCode,
		Proto:         r.Proto,
		Header:        r.Header,
		ContentLength: r.ContentLength,
	}
	if r.Request != nil {
		resp.URL = r.Request.URL
	}
	return resp
}

// A Call is a request in flight. It resolves exactly once, after the
// completion callback given to the request method has returned.
//
// A Call whose request was never sent, because its body could not be
// encoded or its URL was invalid, is already resolved when returned.
type Call struct {
	exec       *request.Execution
	onComplete Completion
	done       chan struct{}

	data []byte
	resp *Response
	err  error
}

func newCall(e *request.Execution, onComplete Completion) *Call {
	return &Call{
		exec:       e,
		onComplete: onComplete,
		done:       make(chan struct{}),
	}
}

// Done returns a channel that is closed when the call resolves.
func (call *Call) Done() <-chan struct{} {
	return call.done
}

// Wait blocks until the call resolves and returns the same values that
// were passed to the completion callback.
func (call *Call) Wait() ([]byte, *Response, error) {
	<-call.done
	return call.data, call.resp, call.err
}

// Execution returns the final state of the request execution, or nil if
// the call has not resolved yet.
func (call *Call) Execution() *request.Execution {
	select {
	case <-call.done:
		return call.exec
	default:
		return nil
	}
}

func (call *Call) complete() {
	defer close(call.done)
	e := call.exec
	call.err = e.Err
	call.resp = newResponse(e.Response)
	if call.err == nil {
		call.data = e.Body
	}
	if call.onComplete != nil {
		call.onComplete(call.data, call.resp, call.err)
	}
}
