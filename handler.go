// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

import (
	"fmt"

	"github.com/gogama/rest/request"
)

// A HandlerGroup holds, for each Event, the ordered list of handlers a
// Client calls when that event fires. The zero value is an empty group
// ready to use.
//
// A group may be shared by several clients. Its handlers see every
// request those clients make, from whatever goroutine the event fires
// on, so they must tolerate concurrent calls.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the handlers for evt. Handlers for one event
// run in the order they were pushed.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("rest: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic(fmt.Sprintf("rest: unknown event %d", int(evt)))
	}
	g.chains[evt] = append(g.chains[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler is called by a Client when an event fires for one of its
// requests. It receives the execution in its state at that point.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc lets a plain function serve as a Handler.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f.
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
