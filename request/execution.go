// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/rest/failure"
)

// An Execution represents the state of a single request issued by a
// client, from the moment the request method is called until the
// completion callback is invoked.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. They should treat
// the exported fields as read-only, with the exception of making
// reasonable changes to the http.Request before it is sent (for
// example, to sign it).
type Execution struct {
	// Method is the HTTP method of the request. It is set when the
	// execution is created and never changes.
	Method string

	// URL is the literal concatenation of the client base URL and the
	// request path, or the plan URL for a prebuilt plan. It is set when
	// the execution is created, even if it turns out not to be a valid
	// URL.
	URL string

	// Plan is the request plan being executed. It is nil if no plan
	// could be built, which happens when URL is not a valid URL.
	Plan *Plan

	// Start is the time the execution started. It is set when the
	// execution is created and never changes.
	Start time.Time

	// End is the time the execution ended. It contains the zero value
	// until the execution ends, just before the completion callback is
	// invoked.
	End time.Time

	// Request is the HTTP request sent to the transport. It is nil if
	// the request was never sent, for example because the body could
	// not be encoded.
	Request *http.Request

	// Response is the HTTP response received from the transport. Its
	// body has already been read into Body and closed by the time the
	// execution ends. It is nil if the transport returned an error or
	// the request was never sent.
	Response *http.Response

	// Err is the error the execution ended with, if any. It is the same
	// value passed to the completion callback.
	Err error

	// Body is the complete response body. It is nil if Err is non-nil.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is true, End is a non-zero time and there will be
// no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Kind returns the failure kind of Err, or failure.None if Err is nil.
func (e *Execution) Kind() failure.Kind {
	return failure.Classify(e.Err)
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return e.Kind() == failure.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of type string or any other built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
