// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package logging builds zap loggers and plugs them into a rest.Client.

The rest package never logs by itself. To log every request made by a
client, install a logger into the client's handler group:

	log, err := logging.New(logging.Config{Level: "debug"})
	if err != nil {
		...
	}
	handlers := &rest.HandlerGroup{}
	logging.Install(handlers, log)
	cl, err := rest.New("https://api.example.com", rest.WithHandlers(handlers))

Each request produces a debug entry when it is sent and one entry when
it ends: info if a response was received, warn if the request failed.
*/
package logging
