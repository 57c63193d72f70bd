// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies the errors a rest.Client delivers to its
// completion callbacks. Every error falls into exactly one Kind: the
// request body could not be encoded, the base URL and path did not form
// a valid URL, or the transport failed (with timeouts and a few
// connection-level errors broken out).
//
// Package failure depends only on the standard library, so importing it
// standalone brings no extra dependencies.
package failure
