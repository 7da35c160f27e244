// Package docnode provides visibility filtering, grouping and JSDoc accessors
// over a package's exported symbols.
package docnode

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// Key identifies a symbol for overload grouping.
type Key struct {
	Kind apidoc.Kind
	Name string
}

// KeyOf returns the grouping key of n.
func KeyOf(n *apidoc.DocNode) Key { return Key{Kind: n.Kind, Name: n.Name} }

// Group is every declaration sharing one Key, in declaration order.
type Group struct {
	Key   Key
	Nodes []*apidoc.DocNode
}

// Primary returns the first declaration of the group.
func (g Group) Primary() *apidoc.DocNode { return g.Nodes[0] }

// IsOverloaded reports whether the group holds more than one declaration.
func (g Group) IsOverloaded() bool { return len(g.Nodes) > 1 }

// IsPublic reports whether n is part of the documented surface: not a module
// doc node, not underscore-prefixed, and not tagged @internal or @private.
func IsPublic(n *apidoc.DocNode) bool {
	if n == nil || n.Kind == apidoc.KindModuleDoc || strings.HasPrefix(n.Name, "_") {
		return false
	}
	if n.JSDoc != nil {
		for _, tag := range n.JSDoc.Tags {
			if tag.Kind == apidoc.TagInternal || tag.Kind == apidoc.TagPrivate {
				return false
			}
		}
	}
	return true
}

// IsLinkable reports whether n renders as an anchored symbol block and can
// therefore be the target of a type link. Imports and namespaces render no
// block of their own.
func IsLinkable(n *apidoc.DocNode) bool {
	switch n.Kind {
	case apidoc.KindClass, apidoc.KindInterface, apidoc.KindFunction,
		apidoc.KindTypeAlias, apidoc.KindEnum, apidoc.KindVariable:
		return true
	}
	return false
}

// PublicNodes returns the public nodes of doc in declaration order.
func PublicNodes(doc *apidoc.PackageDocument) []*apidoc.DocNode {
	var out []*apidoc.DocNode
	for i := range doc.Nodes {
		if IsPublic(&doc.Nodes[i]) {
			out = append(out, &doc.Nodes[i])
		}
	}
	return out
}

// ModuleDoc returns the module-level documentation node, if any.
func ModuleDoc(doc *apidoc.PackageDocument) *apidoc.DocNode {
	for i := range doc.Nodes {
		if doc.Nodes[i].Kind == apidoc.KindModuleDoc {
			return &doc.Nodes[i]
		}
	}
	return nil
}

// GroupByKind partitions nodes by kind, each bucket sorted by name using
// case-insensitive English collation. Sorting is stable so overloads keep
// declaration order.
func GroupByKind(nodes []*apidoc.DocNode) map[apidoc.Kind][]*apidoc.DocNode {
	out := make(map[apidoc.Kind][]*apidoc.DocNode)
	for _, n := range nodes {
		out[n.Kind] = append(out[n.Kind], n)
	}
	// Collators keep internal buffers, so each call gets its own.
	c := collate.New(language.English, collate.IgnoreCase)
	for _, bucket := range out {
		slices.SortStableFunc(bucket, func(a, b *apidoc.DocNode) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// DeduplicateByName keeps the first node of each (kind, name) pair in original order.
func DeduplicateByName(nodes []*apidoc.DocNode) []*apidoc.DocNode {
	seen := make(map[Key]bool, len(nodes))
	out := make([]*apidoc.DocNode, 0, len(nodes))
	for _, n := range nodes {
		k := KeyOf(n)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out
}

// GroupByName groups every node, overloads included, by (kind, name). Groups
// are ordered by first appearance; nodes within a group keep declaration order.
func GroupByName(nodes []*apidoc.DocNode) []Group {
	index := make(map[Key]int, len(nodes))
	var groups []Group
	for _, n := range nodes {
		k := KeyOf(n)
		if i, ok := index[k]; ok {
			groups[i].Nodes = append(groups[i].Nodes, n)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group{Key: k, Nodes: []*apidoc.DocNode{n}})
	}
	return groups
}

// GroupsByKey indexes groups for lookup.
func GroupsByKey(groups []Group) map[Key]Group {
	out := make(map[Key]Group, len(groups))
	for _, g := range groups {
		out[g.Key] = g
	}
	return out
}
