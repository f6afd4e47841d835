// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/cmd/bejcodec/clierr"
	"github.com/dmtf-tools/bej/lib/codec"
	"github.com/dmtf-tools/bej/lib/dictcache"
	"github.com/dmtf-tools/bej/lib/jsontext"
)

// traceRecord is one CBOR-encoded entry in a --trace stream: a single
// SFL tuple observed during decode, in wire order.
type traceRecord struct {
	Offset   int64  `cbor:"offset"`
	Sequence uint64 `cbor:"sequence"`
	Selector int    `cbor:"selector"`
	Format   uint8  `cbor:"format"`
	Length   uint64 `cbor:"length"`
	Name     string `cbor:"name,omitempty"`
}

func runDecode(args []string) error {
	flagSet := pflag.NewFlagSet("bejcodec decode", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	schemaPath := flagSet.StringP("schema", "s", "", "schema dictionary path (required)")
	annotationPath := flagSet.StringP("annotation", "a", "", "annotation dictionary path")
	outputPath := flagSet.StringP("output", "o", "", "output path (default: stdout)")
	tracePath := flagSet.String("trace", "", "write a CBOR-sequence SFL trace to this path")

	if err := flagSet.Parse(args); err != nil {
		return clierr.Usage("decode: %v", err)
	}
	if *schemaPath == "" {
		return clierr.Usage("decode: -s/--schema is required")
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
		return clierr.Failure("decode: %v", err)
	}

	if *tracePath != "" {
		if err := writeTrace(*tracePath, inputData, schemaDict, annotationDict); err != nil {
			return clierr.Failure("decode: %v", err)
		}
	}

	started := time.Now()
	root, err := bej.Decode(bytes.NewReader(inputData), schemaDict, annotationDict)
	if err != nil {
		return clierr.Failure("decode: %v", err)
	}
	logger.Debug("bej decode", "bytes", len(inputData), "duration", time.Since(started))

	formatted, err := jsontext.Format(root)
	if err != nil {
		return clierr.Failure("decode: %v", err)
	}

	out, closeOut, err := openOutput(*outputPath)
	if err != nil {
		return clierr.Failure("%v", err)
	}
	defer closeOut()

	if _, err := out.Write(formatted); err != nil {
		return clierr.Failure("decode: writing output: %v", err)
	}
	return nil
}

// writeTrace re-decodes input solely to observe its SFL tuples,
// writing each as a CBOR-sequence record to path. It runs independently
// of the real decode so a trace can be captured even when the caller
// also wants the decoded JSON on stdout.
func writeTrace(path string, input []byte, schemaDict, annotDict *bej.Dictionary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := codec.NewEncoder(file)
	traceErr := bej.Trace(bytes.NewReader(input), schemaDict, annotDict, func(event bej.TraceEvent) {
		_ = encoder.Encode(traceRecord{
			Offset:   event.Offset,
			Sequence: event.Sequence,
			Selector: event.Selector,
			Format:   uint8(event.Format),
			Length:   event.Length,
			Name:     event.Name,
		})
	})
	return traceErr
}
