// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

import (
	"github.com/gogama/rest/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do issues the request described by a prebuilt plan and returns
// immediately. The outcome is delivered to onComplete, which may be
// nil, and through the returned Call.
type Doer interface {
	Do(p *request.Plan, onComplete Completion) *Call
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to a path relative to a base URL. Client implements
// the Getter interface, and any other Getter implementation must behave
// substantially the same as Client.Get.
type Getter interface {
	Get(path string, header map[string]string, onComplete Completion) *Call
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST with a JSON body to a path relative to a base URL.
// Client implements the Poster interface, and any other Poster
// implementation must behave substantially the same as Client.Post.
type Poster interface {
	Post(path string, header map[string]string, body interface{}, onComplete Completion) *Call
}

// Putter is the interface that wraps the basic Put method.
//
// Put issues a PUT with a JSON body to a path relative to a base URL.
// Client implements the Putter interface, and any other Putter
// implementation must behave substantially the same as Client.Put.
type Putter interface {
	Put(path string, header map[string]string, body interface{}, onComplete Completion) *Call
}

// Deleter is the interface that wraps the basic Delete method.
//
// Delete issues a DELETE, with an optional JSON body, to a path relative
// to a base URL. Client implements the Deleter interface, and any other
// Deleter implementation must behave substantially the same as
// Client.Delete, including its Content-Type rule.
type Deleter interface {
	Delete(path string, header map[string]string, body interface{}, onComplete Completion) *Call
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Post, Put,
// Delete, and CloseIdleConnections methods. Client implements Executor.
type Executor interface {
	Doer
	Getter
	Poster
	Putter
	Deleter
	IdleCloser
}

var _ Executor = (*Client)(nil)
