// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, None, Classify(nil))
	assert.Equal(t, Transport, Classify(errors.New("foo")))
	assert.Equal(t, Transport, Classify(wrapper{errors.New("bar")}))
	assert.Equal(t, Transport, Classify(&url.Error{Op: "Get", URL: "x", Err: errors.New("baz")}))
	assert.Equal(t, Encode, Classify(&EncodeError{Err: errors.New("ham")}))
	assert.Equal(t, Encode, Classify(wrapper{&EncodeError{Err: timeout{}}}))
	assert.Equal(t, InvalidURL, Classify(&url.Error{Op: "parse", URL: ":::", Err: errors.New("missing protocol scheme")}))
	assert.Equal(t, InvalidURL, Classify(wrapper{&url.Error{Op: "parse", Err: timeout{}}}))
	assert.Equal(t, Timeout, Classify(syscall.ETIMEDOUT))
	assert.Equal(t, Timeout, Classify(timeout{}))
	assert.Equal(t, Timeout, Classify(&url.Error{Op: "Post", Err: syscall.ETIMEDOUT}))
	assert.Equal(t, Timeout, Classify(wrapper{wrapper{timeout{}}}))
	assert.Equal(t, Timeout, Classify(timeoutWrapper{true, syscall.ECONNRESET}))
	assert.Equal(t, ConnReset, Classify(syscall.ECONNRESET))
	assert.Equal(t, ConnReset, Classify(&url.Error{Op: "Get", Err: wrapper{syscall.ECONNRESET}}))
	assert.Equal(t, ConnReset, Classify(timeoutWrapper{false, syscall.ECONNRESET}))
	assert.Equal(t, ConnRefused, Classify(syscall.ECONNREFUSED))
	assert.Equal(t, ConnRefused, Classify(&url.Error{Op: "Delete", Err: wrapper{timeoutWrapper{false, syscall.ECONNREFUSED}}}))
}

func TestKind(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "none", None.String())
		assert.Equal(t, "encode", Encode.String())
		assert.Equal(t, "invalid_url", InvalidURL.String())
		assert.Equal(t, "timeout", Timeout.String())
		assert.Equal(t, "conn_refused", ConnRefused.String())
		assert.Equal(t, "conn_reset", ConnReset.String())
		assert.Equal(t, "transport", Transport.String())
		assert.Equal(t, "unknown", Kind(-1).String())
		assert.Equal(t, "unknown", Kind(99).String())
		assert.Equal(t, "timeout", fmt.Sprint(Timeout))
	})
	t.Run("Transient", func(t *testing.T) {
		for _, k := range []Kind{None, Encode, InvalidURL, Transport} {
			assert.False(t, k.Transient(), k.String())
		}
		for _, k := range []Kind{Timeout, ConnRefused, ConnReset} {
			assert.True(t, k.Transient(), k.String())
		}
	})
}

func TestEncodeError(t *testing.T) {
	_, cause := json.Marshal(make(chan int))
	require.Error(t, cause)
	err := &EncodeError{Err: cause}
	assert.Equal(t, "rest: encode body: "+cause.Error(), err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
	var typeErr *json.UnsupportedTypeError
	assert.True(t, errors.As(err, &typeErr))
}

type timeout struct{}

func (err timeout) Error() string {
	return "timeout"
}

func (_ timeout) Timeout() bool {
	return true
}

type wrapper struct {
	wrappedError error
}

func (err wrapper) Error() string {
	return fmt.Sprintf("wrapper - wraps %v", err.wrappedError)
}

func (err wrapper) Unwrap() error {
	return err.wrappedError
}

type timeoutWrapper struct {
	timeout      bool
	wrappedError error
}

func (err timeoutWrapper) Error() string {
	return fmt.Sprintf("timeoutWrapper - timeout %t, wraps %v", err.timeout, err.wrappedError)
}

func (err timeoutWrapper) Timeout() bool {
	return err.timeout
}

func (err timeoutWrapper) Unwrap() error {
	return err.wrappedError
}
