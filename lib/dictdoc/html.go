// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictdoc

import (
	"bytes"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	markdownParserOnce sync.Once
	markdownParser     goldmark.Markdown
)

// getMarkdownParser returns the shared goldmark instance, configured
// once with the extensions this package relies on and a code-block
// renderer that highlights fenced code with Chroma instead of
// goldmark's plain <pre><code>.
func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.DefinitionList),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
				renderer.WithNodeRenderers(
					util.Prioritized(&highlightedCodeRenderer{}, 100),
				),
			),
		)
	})
	return markdownParser
}

// HTML converts a dictdoc Markdown document to HTML, syntax
// highlighting any fenced JSON example blocks with Chroma.
func HTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := getMarkdownParser().Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("dictdoc: rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// highlightedCodeRenderer replaces goldmark's default
// FencedCodeBlock rendering with Chroma's HTML formatter. It is
// registered at a higher priority than goldmark's own HTML renderer,
// so every other node kind still falls through to the default.
type highlightedCodeRenderer struct{}

func (r *highlightedCodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *highlightedCodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block := n.(*ast.FencedCodeBlock)
	language := string(block.Language(source))

	var code bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}

	if err := highlightHTML(w, code.String(), language); err != nil {
		// Fall back to an unhighlighted block rather than failing the
		// whole document over one unrecognized language.
		fmt.Fprintf(w, "<pre><code>%s</code></pre>\n", util.EscapeHTML(code.Bytes()))
	}

	return ast.WalkSkipChildren, nil
}

// highlightHTML writes code as Chroma-highlighted HTML to w. An
// empty or unrecognized language falls back to Chroma's plaintext
// lexer, which still produces valid (if uncolored) markup.
func highlightHTML(w util.BufWriter, code, language string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenizing code block: %w", err)
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	return formatter.Format(w, style, iterator)
}
