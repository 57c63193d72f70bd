// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command restcall sends one request through a rest.Client and writes
// the response body to standard output.
//
// Usage:
//
//	restcall [flags] METHOD PATH
//
// The base URL, log settings and transport settings come from the
// config file, the environment (REST_BASE_URL and so on) and flags, in
// increasing order of precedence. restcall exits with status 1 if the
// request fails or the response status is 400 or above, and with status
// 2 on a usage error.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gogama/rest"
	"github.com/gogama/rest/config"
	"github.com/gogama/rest/logging"
	"github.com/gogama/rest/request"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

var flagKeys = map[string]string{
	"base-url":   "base_url",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("restcall", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: restcall [flags] METHOD PATH")
		fs.PrintDefaults()
	}
	configFile := fs.String("config", "", "config file (YAML)")
	envFile := fs.String("env-file", "", "env file (default ./.env if present)")
	fs.String("base-url", "", "base URL prepended to PATH")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: json or console")
	headers := fs.StringArrayP("header", "H", nil, `request header "Name: value" (repeatable)`)
	data := fs.StringP("data", "d", "", "JSON request body")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		fs.Usage()
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	method, path := strings.ToUpper(fs.Arg(0)), fs.Arg(1)

	header, err := parseHeaders(*headers)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	var body interface{}
	if *data != "" {
		if !json.Valid([]byte(*data)) {
			fmt.Fprintln(stderr, "error: --data is not valid JSON")
			return 2
		}
		body = json.RawMessage(*data)
	}

	opts := []config.Option{config.WithFlags(fs, flagKeys)}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	log, err := logging.NewWithWriter(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	defer func() { _ = log.Sync() }()
	handlers := &rest.HandlerGroup{}
	logging.Install(handlers, log)

	cl, err := cfg.NewClient(handlers)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	defer cl.CloseIdleConnections()

	call, err := send(cl, method, path, header, body)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	b, resp, err := call.Wait()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if _, err = stdout.Write(b); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if resp.StatusCode >= 400 {
		fmt.Fprintln(stderr, "error:", resp.Status)
		return 1
	}
	return 0
}

// send issues the request through the verb method matching method, or
// through a plan for any other method.
func send(cl *rest.Client, method, path string, header map[string]string, body interface{}) (*rest.Call, error) {
	switch method {
	case "GET":
		if body != nil {
			return nil, errors.New("GET does not take a body")
		}
		return cl.Get(path, header, nil), nil
	case "POST":
		return cl.Post(path, header, body, nil), nil
	case "PUT":
		return cl.Put(path, header, body, nil), nil
	case "DELETE":
		return cl.Delete(path, header, body, nil), nil
	}

	p, err := request.NewPlan(method, cl.BaseURL()+path, header)
	if err != nil {
		return nil, err
	}
	if body != nil {
		if err = p.SetJSONBody(body); err != nil {
			return nil, err
		}
		if !hasContentType(header) {
			p.Header.Set("Content-Type", "application/json")
		}
	}
	return cl.Do(p, nil), nil
}

// parseHeaders parses "Name: value" strings, curl style. The name is
// kept as written.
func parseHeaders(lines []string) (map[string]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	header := make(map[string]string, len(lines))
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", line)
		}
		header[strings.TrimSpace(line[:i])] = strings.TrimSpace(line[i+1:])
	}
	return header, nil
}

func hasContentType(header map[string]string) bool {
	for k := range header {
		if strings.EqualFold(k, "Content-Type") {
			return true
		}
	}
	return false
}
