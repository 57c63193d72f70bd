// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"net/url"
	"syscall"
)

// A Kind is the failure category of an error, as reported by Classify.
type Kind int

const (
	// None is the kind of a nil error.
	None Kind = iota
	// Encode indicates the request body could not be converted to JSON.
	// No request was sent.
	//
	// Classify returns Encode if the error or any of its wrapped causes
	// is an *EncodeError.
	Encode
	// InvalidURL indicates the concatenation of base URL and path could
	// not be parsed as a URL. No request was sent.
	//
	// Classify returns InvalidURL if the error or any of its wrapped
	// causes is a *url.Error whose Op is "parse".
	InvalidURL
	// Timeout indicates a client-side timeout configured on the
	// transport, such as the overall request timeout or the TLS
	// handshake timeout.
	//
	// Classify returns Timeout if the error or any of its wrapped causes
	// has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// Transport indicates any other error returned by the transport or
	// raised while reading the response body: DNS failures, TLS
	// failures, unsupported protocol schemes and so on.
	Transport
)

var kindNames = []string{
	"none",
	"encode",
	"invalid_url",
	"timeout",
	"conn_refused",
	"conn_reset",
	"transport",
}

// String returns a short snake_case name for the kind, suitable for use
// as a log field or metric dimension.
func (k Kind) String() string {
	if k < None || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Transient reports whether a failure of this kind has some prospect of
// succeeding if the same request is sent again. The client itself never
// retries.
func (k Kind) Transient() bool {
	return k == Timeout || k == ConnRefused || k == ConnReset
}

// Classify returns the failure kind of the given error. A nil error
// produces None, and any non-nil error produces some other kind.
//
// Classify looks at wrapped cause errors contained within err, not just
// err itself. Encode and InvalidURL are checked first, since neither can
// coincide with a network failure.
func Classify(err error) Kind {
	if err == nil {
		return None
	}

	var encodeErr *EncodeError
	if errors.As(err, &encodeErr) {
		return Encode
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Op == "parse" {
		return InvalidURL
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Transport
}

type hasTimeout interface {
	Timeout() bool
}
