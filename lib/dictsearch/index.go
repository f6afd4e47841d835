// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictsearch

import (
	"sort"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/dmtf-tools/bej/bej"
	"github.com/dmtf-tools/bej/lib/dictdoc"
)

// Match is a single search result: a dotted property path and its
// fuzzy-match score (higher is a better match).
type Match struct {
	Path  string
	Score int
}

// Index is a flattened, searchable view of a schema dictionary's
// property tree. Build it once per dictionary and reuse it across
// searches; the underlying fzf match slab is not safe for concurrent
// use.
type Index struct {
	paths []string
	slab  *util.Slab
}

// Build flattens resourceType's schema dictionary into an Index of
// dotted property paths ("Oem.Contoso.FanSpeed" style), ready for
// [Index.Search].
func Build(dict *bej.Dictionary, resourceType string) (*Index, error) {
	root, err := dictdoc.Walk(dict, resourceType)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, child := range root.Children {
		collectPaths(child, "", &paths)
	}

	return &Index{
		paths: paths,
		slab:  util.MakeSlab(16*1024, 2*1024),
	}, nil
}

func collectPaths(p dictdoc.Property, prefix string, out *[]string) {
	path := p.Name
	if prefix != "" && p.Name != "" {
		path = prefix + "." + p.Name
	} else if prefix != "" {
		path = prefix
	}
	if p.Name != "" {
		*out = append(*out, path)
	}
	for _, child := range p.Children {
		collectPaths(child, path, out)
	}
}

// Search returns every property path that fuzzy-matches pattern,
// ranked by descending score. An empty pattern returns every path
// unranked.
func (idx *Index) Search(pattern string) []Match {
	if pattern == "" {
		matches := make([]Match, len(idx.paths))
		for i, path := range idx.paths {
			matches[i] = Match{Path: path}
		}
		return matches
	}

	needle := []rune(pattern)
	var matches []Match
	for _, path := range idx.paths {
		haystack := util.RunesToChars([]rune(path))
		result, _ := algo.FuzzyMatchV2(false, true, true, &haystack, needle, false, idx.slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, Match{Path: path, Score: int(result.Score)})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}
