// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package rest provides a minimal JSON REST client over a base URL, with
GET, POST, PUT, and DELETE methods that deliver their results to a
completion callback.

Create a Client to begin making requests.

	client, err := rest.New("https://api.example.com")
	...
	client.Get("/users/42", map[string]string{"Authorization": "Bearer x"},
		func(data []byte, resp *rest.Response, err error) {
			...
		})
	...
	client.Post("/users", nil, map[string]string{"name": "Ann"},
		func(data []byte, resp *rest.Response, err error) {
			...
		})

Every request method returns immediately. The request is sent on its own
goroutine and the completion callback is invoked exactly once when it
finishes. The returned Call can be used instead of, or as well as, the
callback:

	data, resp, err := client.Delete("/users/42", nil, nil, nil).Wait()

Request bodies are encoded with encoding/json before anything is sent.
If a body cannot be encoded, or the base URL and path do not form a
valid URL, the callback is invoked right away, on the calling goroutine,
with the error and no request is sent. Use package failure to tell the
kinds of error apart.

For control over how the client sends HTTP requests, set a transport
configuration, or bring your own HTTPDoer:

	client, err := rest.New("https://api.example.com",
		rest.WithConfig(rest.TransportConfig{
			Timeout: 10 * time.Second,
			HTTP2:   true,
		}))

To hook into the details of request execution, install a handler into
the appropriate handler chain:

	handlers := &rest.HandlerGroup{}
	handlers.PushBack(rest.BeforeSend, rest.HandlerFunc(
		func(_ rest.Event, e *request.Execution) {
			log.Printf("%s %s", e.Method, e.URL)
		}))
	client, err := rest.New("https://api.example.com", rest.WithHandlers(handlers))

Package logging provides ready-made handlers that log every execution
with zap.
*/
package rest
