// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/lib/dictcache"
)

// readInput reads the command's input: the single positional
// argument as a file path if one was given, stdin otherwise.
func readInput(args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("unexpected argument %q (input is read from a single positional path or stdin)", args[1])
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// openOutput opens path for writing, or returns stdout when path is
// empty. The returned close func is always safe to defer.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return file, func() { file.Close() }, nil
}

// defaultCacheDir returns the dictionary parse cache directory,
// honoring BEJ_CACHE_DIR for callers that want an explicit location
// (tests, containers with a read-only home).
func defaultCacheDir() string {
	if dir := os.Getenv("BEJ_CACHE_DIR"); dir != "" {
		return dir
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "bejcodec")
	}
	return filepath.Join(cacheDir, "bejcodec")
}

// loadDictionary loads and parses path through the dictionary cache,
// logging its digest and entry count at debug level.
func loadDictionary(logger *slog.Logger, cache *dictcache.Cache, path string) (*bej.Dictionary, error) {
	dict, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", path, err)
	}
	logger.Debug("loaded dictionary",
		"path", path,
		"entry_count", dict.EntryCount(),
		"digest", dictcache.Digest(dict.Bytes()),
	)
	return dict, nil
}
