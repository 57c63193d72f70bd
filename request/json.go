// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"

	"github.com/gogama/rest/failure"
)

// EncodeJSON converts any value encoding/json can marshal into its JSON
// wire representation.
//
// If v cannot be encoded (for example a channel, a function, or a NaN
// float), the return value is a nil byte slice and a
// *failure.EncodeError wrapping the encoding/json error.
func EncodeJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &failure.EncodeError{Err: err}
	}
	return b, nil
}
