// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dmtf-tools/bej/cmd/bejcodec/clierr"
	"github.com/dmtf-tools/bej/lib/dictcache"
	"github.com/dmtf-tools/bej/lib/dictdoc"
	"github.com/dmtf-tools/bej/lib/dictsearch"
)

func runDict(args []string) error {
	if len(args) == 0 {
		return clierr.Usage("dict: expected a subcommand (dump, doc, grep)")
	}
	switch args[0] {
	case "dump":
		return runDictDump(args[1:])
	case "doc":
		return runDictDoc(args[1:])
	case "grep":
		return runDictGrep(args[1:])
	default:
		return clierr.Usage("dict: unknown subcommand %q", args[0])
	}
}

func newDictFlagSet(name string) (*pflag.FlagSet, *dictFlags) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	f := &dictFlags{}
	flagSet.StringVarP(&f.schemaPath, "schema", "s", "", "schema dictionary path")
	flagSet.StringVarP(&f.annotationPath, "annotation", "a", "", "annotation dictionary path")
	flagSet.StringVarP(&f.registryPath, "registry", "r", "", "registry manifest path")
	flagSet.StringVarP(&f.resourceType, "type", "t", "", "resource type, resolved against --registry")
	return flagSet, f
}

// runDictDump prints a dictionary's entry tree. When stdout is a
// terminal, format names are ANSI-colored; piped output is plain text
// so it stays grep-friendly.
func runDictDump(args []string) error {
	flagSet, f := newDictFlagSet("bejcodec dict dump")
	if err := flagSet.Parse(args); err != nil {
		return clierr.Usage("dict dump: %v", err)
	}

	logger := slog.Default()
	cache, err := dictcache.Open(defaultCacheDir())
	if err != nil {
		return clierr.Failure("%v", err)
	}

	schemaDict, _, resourceType, err := f.resolve(logger, cache)
	if err != nil {
		return clierr.Failure("dict dump: %v", err)
	}
	if resourceType == "" {
		resourceType = "Resource"
	}

	root, err := dictdoc.Walk(schemaDict, resourceType)
	if err != nil {
		return clierr.Failure("dict dump: %v", err)
	}

	colorize := term.IsTerminal(int(os.Stdout.Fd()))
	var b strings.Builder
	writeDumpTree(&b, root, 0, colorize)
	fmt.Print(b.String())
	return nil
}

func writeDumpTree(b *strings.Builder, p dictdoc.Property, depth int, colorize bool) {
	b.WriteString(strings.Repeat("  ", depth))
	if colorize {
		fmt.Fprintf(b, "%s \x1b[36m%s\x1b[0m (sequence %d)\n", p.Name, formatLabel(p), p.Sequence)
	} else {
		fmt.Fprintf(b, "%s %s (sequence %d)\n", p.Name, formatLabel(p), p.Sequence)
	}
	for _, child := range p.Children {
		writeDumpTree(b, child, depth+1, colorize)
	}
}

func formatLabel(p dictdoc.Property) string {
	return fmt.Sprintf("<%s>", dictdoc.FormatName(p.Format))
}

// runDictDoc renders a dictionary's schema documentation as Markdown,
// or as HTML with --html.
func runDictDoc(args []string) error {
	flagSet, f := newDictFlagSet("bejcodec dict doc")
	asHTML := flagSet.Bool("html", false, "render as HTML instead of Markdown")
	outputPath := flagSet.StringP("output", "o", "", "output path (default: stdout)")
	if err := flagSet.Parse(args); err != nil {
		return clierr.Usage("dict doc: %v", err)
	}

	logger := slog.Default()
	cache, err := dictcache.Open(defaultCacheDir())
	if err != nil {
		return clierr.Failure("%v", err)
	}

	schemaDict, _, resourceType, err := f.resolve(logger, cache)
	if err != nil {
		return clierr.Failure("dict doc: %v", err)
	}
	if resourceType == "" {
		resourceType = "Resource"
	}

	root, err := dictdoc.Walk(schemaDict, resourceType)
	if err != nil {
		return clierr.Failure("dict doc: %v", err)
	}
	markdown := dictdoc.Markdown(root, resourceType)

	var rendered []byte
	if *asHTML {
		rendered, err = dictdoc.HTML([]byte(markdown))
		if err != nil {
			return clierr.Failure("dict doc: %v", err)
		}
	} else {
		rendered = []byte(markdown)
	}

	out, closeOut, err := openOutput(*outputPath)
	if err != nil {
		return clierr.Failure("%v", err)
	}
	defer closeOut()
	if _, err := out.Write(rendered); err != nil {
		return clierr.Failure("dict doc: writing output: %v", err)
	}
	return nil
}

// runDictGrep fuzzy-searches a dictionary's property paths.
func runDictGrep(args []string) error {
	flagSet, f := newDictFlagSet("bejcodec dict grep")
	if err := flagSet.Parse(args); err != nil {
		return clierr.Usage("dict grep: %v", err)
	}
	remaining := flagSet.Args()
	if len(remaining) != 1 {
		return clierr.Usage("dict grep: expected exactly one pattern argument")
	}
	pattern := remaining[0]

	logger := slog.Default()
	cache, err := dictcache.Open(defaultCacheDir())
	if err != nil {
		return clierr.Failure("%v", err)
	}

	schemaDict, _, resourceType, err := f.resolve(logger, cache)
	if err != nil {
		return clierr.Failure("dict grep: %v", err)
	}
	if resourceType == "" {
		resourceType = "Resource"
	}

	index, err := dictsearch.Build(schemaDict, resourceType)
	if err != nil {
		return clierr.Failure("dict grep: %v", err)
	}

	for _, match := range index.Search(pattern) {
		fmt.Printf("%6d  %s\n", match.Score, match.Path)
	}
	return nil
}
