// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

// An EncodeError reports that a request body value could not be
// serialized to JSON. Err is the underlying encoding/json error, so
// errors.As works for *json.UnsupportedTypeError and friends.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "rest: encode body: " + e.Err.Error()
}

// Unwrap returns the underlying encoding error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}
