// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command bejcodec encodes JSON to BEJ and decodes BEJ back to JSON
// against a DMTF schema dictionary, and inspects dictionaries
// themselves through its dict subcommand group.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmtf-tools/bej/lib/version"
)

const usage = `bejcodec encodes JSON to BEJ and decodes BEJ back to JSON.

Usage:
  bejcodec encode -s SCHEMA [-a ANNOTATION] [-o OUTPUT] [INPUT]
  bejcodec decode -s SCHEMA [-a ANNOTATION] [-o OUTPUT] [--trace FILE] [INPUT]
  bejcodec dict dump -s SCHEMA | -r REGISTRY -t TYPE
  bejcodec dict doc  -s SCHEMA | -r REGISTRY -t TYPE [--html] [-o OUTPUT]
  bejcodec dict grep -s SCHEMA | -r REGISTRY -t TYPE PATTERN
  bejcodec --version

INPUT defaults to stdin; OUTPUT defaults to stdout.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "--version", "version":
		fmt.Printf("bejcodec %s\n", version.Info())
		return 0
	case "--help", "-h", "help":
		fmt.Print(usage)
		return 0
	}

	if level := os.Getenv("BEJ_LOG_LEVEL"); level != "" {
		configureLogging(level)
	}

	var err error
	switch args[0] {
	case "encode":
		err = runEncode(args[1:])
	case "decode":
		err = runDecode(args[1:])
	case "dict":
		err = runDict(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "bejcodec: unknown command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	if err == nil {
		return 0
	}

	fmt.Fprintf(os.Stderr, "bejcodec: %v\n", err)
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return 1
}

// configureLogging installs a text slog.Logger at the requested level
// as the process-wide default. bejcodec only ever logs at debug level
// (dictionary loads, codec timings); anything coarser is silence.
func configureLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "bejcodec: invalid BEJ_LOG_LEVEL %q: %v\n", level, err)
		return
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
