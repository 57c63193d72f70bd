// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes one HTTP request
to send) and Execution (describes the state of sending it).

A Plan looks like a stripped-down http.Request: a method, a URL, a
header, and a pre-buffered body. Unlike http.Request, a Plan keeps the
caller's header keys exactly as given instead of canonicalizing them.

	p, err := request.NewPlan("POST", "https://api.example.com/users",
		map[string]string{"Authorization": "Bearer x"})
	...
	err = p.SetJSONBody(map[string]string{"name": "Ann"})
	...

An Execution is created by rest.Client for every request it issues. It
is handed to event handlers as the request progresses and is available
from the returned rest.Call once the request completes. You will
typically not allocate Execution instances yourself.
*/
package request
