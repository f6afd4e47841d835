// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dictdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmtf-tools/bej/bej"
)

// maxDepth bounds the property tree walk. Dictionaries describe
// finite schemas, but a corrupt child pointer could otherwise loop
// forever; this is a backstop, not an expected limit.
const maxDepth = 64

// Property is one row of a dictionary's documentation: a resolved
// property name, its wire format, and (for SET, ARRAY and ENUM
// properties) its children; an ENUM's children are its values.
type Property struct {
	Name     string
	Format   bej.Format
	Sequence uint16
	Children []Property
}

// Walk renders resourceType's schema dictionary into a Property tree
// rooted at the dictionary's single root entry.
func Walk(dict *bej.Dictionary, resourceType string) (Property, error) {
	root, ok := dict.Root()
	if !ok {
		return Property{}, fmt.Errorf("dictdoc: dictionary has no root entry")
	}
	return walkEntry(dict, root, resourceType, 0), nil
}

func walkEntry(dict *bej.Dictionary, entry bej.Entry, name string, depth int) Property {
	prop := Property{Name: name, Format: entry.Format, Sequence: entry.Sequence}
	if depth >= maxDepth {
		return prop
	}
	if entry.Format != bej.FormatSet && entry.Format != bej.FormatArray && entry.Format != bej.FormatEnum {
		return prop
	}

	cursor := dict.Subset(entry.ChildPointer, entry.ChildCount)
	for {
		child, ok := cursor.Next()
		if !ok {
			break
		}
		childName, has := child.Name()
		if !has {
			childName = fmt.Sprintf("[%d]", child.Sequence)
		}
		prop.Children = append(prop.Children, walkEntry(dict, child, childName, depth+1))
	}

	sort.SliceStable(prop.Children, func(i, j int) bool {
		return prop.Children[i].Sequence < prop.Children[j].Sequence
	})

	return prop
}

// FormatName returns the wire format's human-readable name, matching
// the identifiers used across the codec's source rather than DMTF's
// numeric codes.
func FormatName(f bej.Format) string {
	switch f {
	case bej.FormatSet:
		return "set"
	case bej.FormatArray:
		return "array"
	case bej.FormatNull:
		return "null"
	case bej.FormatInteger:
		return "integer"
	case bej.FormatEnum:
		return "enum"
	case bej.FormatString:
		return "string"
	case bej.FormatReal:
		return "real"
	case bej.FormatBoolean:
		return "boolean"
	case bej.FormatPropertyAnnotation:
		return "property-annotation"
	case bej.FormatResourceLink:
		return "resource-link"
	default:
		return fmt.Sprintf("unknown(0x%X)", uint8(f))
	}
}

// Markdown renders a Property tree as a reference document: a
// heading for the resource type, then a nested bullet list of every
// property with its format and sequence number.
func Markdown(root Property, resourceType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", resourceType)
	fmt.Fprintf(&b, "Dictionary root: `%s` (%s)\n\n", root.Name, FormatName(root.Format))
	writeChildren(&b, root.Children, 0)
	return b.String()
}

func writeChildren(b *strings.Builder, children []Property, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, child := range children {
		fmt.Fprintf(b, "%s- **%s** — %s, sequence %d\n", indent, child.Name, FormatName(child.Format), child.Sequence)
		writeChildren(b, child.Children, depth+1)
	}
}
