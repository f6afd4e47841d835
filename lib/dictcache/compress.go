// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictcache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// ReadDictionaryFile reads the dictionary named by path, resolving a
// ".map" path to its sibling ".bin" file first (the same resolution
// [bej.Load] performs for callers that bypass the cache), and
// transparently decompressing the result if its extension is .gz or
// .lz4. A dictionary registry (lib/registry) may point at any of
// these forms interchangeably; the caller never needs to know which
// one is on disk.
func ReadDictionaryFile(path string) ([]byte, error) {
	resolved := resolveDictionaryPath(path)

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", resolved, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".gz":
		return readGzip(file)
	case ".lz4":
		return readLZ4(file)
	default:
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("reading dictionary %s: %w", resolved, err)
		}
		return data, nil
	}
}

// resolveDictionaryPath maps a ".map" path to its sibling ".bin"
// file; any other extension passes through unchanged.
func resolveDictionaryPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".map") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".bin"
	}
	return path
}

// readGzip decompresses via klauspost/compress/gzip, a drop-in
// replacement for compress/gzip with a faster decoder — dictionaries
// are decompressed on every CLI invocation that names a .gz path, so
// the decode cost is on a hot path rather than a one-shot operation.
func readGzip(r io.Reader) ([]byte, error) {
	decoder, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip dictionary: %w", err)
	}
	return data, nil
}

func readLZ4(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(lz4.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decompressing lz4 dictionary: %w", err)
	}
	return data, nil
}
