// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/cmd/bejcodec/clierr"
	"github.com/dmtf-tools/bej/lib/dictcache"
	"github.com/dmtf-tools/bej/lib/jsontext"
)

func runEncode(args []string) error {
	flagSet := pflag.NewFlagSet("bejcodec encode", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	schemaPath := flagSet.StringP("schema", "s", "", "schema dictionary path (required)")
	annotationPath := flagSet.StringP("annotation", "a", "", "annotation dictionary path")
	outputPath := flagSet.StringP("output", "o", "", "output path (default: stdout)")

	if err := flagSet.Parse(args); err != nil {
		return clierr.Usage("encode: %v", err)
	}
	if *schemaPath == "" {
		return clierr.Usage("encode: -s/--schema is required")
	}

	logger := slog.Default()

	cache, err := dictcache.Open(defaultCacheDir())
	if err != nil {
		return clierr.Failure("%v", err)
	}

	schemaDict, err := loadDictionary(logger, cache, *schemaPath)
	if err != nil {
		return clierr.Failure("%v", err)
	}

	var annotationDict *bej.Dictionary
	if *annotationPath != "" {
		annotationDict, err = loadDictionary(logger, cache, *annotationPath)
		if err != nil {
			return clierr.Failure("%v", err)
		}
	}

	inputData, err := readInput(flagSet.Args())
	if err != nil {
		return clierr.Failure("encode: %v", err)
	}

	root, err := jsontext.Parse(inputData)
	if err != nil {
		return clierr.Usage("encode: %v", err)
	}

	out, closeOut, err := openOutput(*outputPath)
	if err != nil {
		return clierr.Failure("%v", err)
	}
	defer closeOut()

	var sink bytes.Buffer
	started := time.Now()
	if err := bej.Encode(&sink, root, schemaDict, annotationDict); err != nil {
		return clierr.Failure("encode: %v", err)
	}
	logger.Debug("bej encode", "bytes", sink.Len(), "duration", time.Since(started))

	if _, err := out.Write(sink.Bytes()); err != nil {
		return clierr.Failure("encode: writing output: %v", err)
	}
	return nil
}
