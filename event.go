// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rest

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs when a
	// request method is called, before anything else happens.
	//
	// When Client fires BeforeExecutionStart, the execution's Method,
	// URL, and Start fields are set and nothing else is. The event
	// always fires on the goroutine that called the request method.
	BeforeExecutionStart Event = iota
	// BeforeSend identifies the event that occurs just before the
	// request is handed to the HTTPDoer.
	//
	// When Client fires BeforeSend, the execution's Plan and Request
	// fields are set. BeforeSend handlers may modify the request, for
	// example to sign it, but should clone fields which have reference
	// types (URL and Header) before changing them, as these initially
	// reference the same-named fields in the plan.
	//
	// BeforeSend never fires if the body could not be encoded or the
	// URL was invalid.
	BeforeSend
	// BeforeReadBody identifies the event that occurs after the
	// request has resulted in an HTTP response (as opposed to an error)
	// but before the response body is read and buffered.
	//
	// BeforeReadBody fires regardless of the response status code.
	BeforeReadBody
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends, immediately before the completion callback is
	// invoked.
	//
	// AfterExecutionEnd fires exactly once for every request, including
	// requests that were never sent. When it fires, the execution is in
	// its final state and End is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeSend",
	"BeforeReadBody",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// request execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeSend,
		BeforeReadBody,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
