package xref

import (
	"git.home.luguber.info/inful/docsite/internal/util/sets"
)

// LinkGroups is the displayed link list: local, then cross-package, then
// built-in, each sorted by name. Unresolved names are not listed.
type LinkGroups struct {
	Local        []Link
	CrossPackage []Link
	Builtin      []Link
	// Unresolved counts names that resolved nowhere.
	Unresolved int
}

// Empty reports whether no group holds a link.
func (g LinkGroups) Empty() bool {
	return len(g.Local) == 0 && len(g.CrossPackage) == 0 && len(g.Builtin) == 0
}

// All returns every link in display order.
func (g LinkGroups) All() []Link {
	out := make([]Link, 0, len(g.Local)+len(g.CrossPackage)+len(g.Builtin))
	out = append(out, g.Local...)
	out = append(out, g.CrossPackage...)
	return append(out, g.Builtin...)
}

// Collector accumulates referenced names across one package render pass.
// It is not safe for concurrent use; each render creates its own.
type Collector struct {
	resolver *Resolver
	names    sets.Set[string]
}

func NewCollector(r *Resolver) *Collector {
	return &Collector{resolver: r, names: sets.New[string]()}
}

// Resolver returns the resolver the collector classifies with.
func (c *Collector) Resolver() *Resolver { return c.resolver }

// Add records names. Empty names are ignored.
func (c *Collector) Add(names ...string) {
	for _, n := range names {
		if n != "" {
			c.names.Add(n)
		}
	}
}

// AddSet records every name in s. s is left unchanged.
func (c *Collector) AddSet(s sets.Set[string]) {
	if s.Has("") {
		s = s.Clone()
		s.Delete("")
	}
	c.names.AddAll(s)
}

// Len returns the number of distinct names recorded.
func (c *Collector) Len() int { return len(c.names) }

// Links classifies every recorded name and returns the grouped links.
func (c *Collector) Links() LinkGroups {
	var g LinkGroups
	// Names are visited in sorted order so each group comes out sorted.
	for _, name := range sets.Sorted(c.names) {
		link := c.resolver.Resolve(name)
		switch link.Class {
		case Local:
			g.Local = append(g.Local, link)
		case CrossPackage:
			g.CrossPackage = append(g.CrossPackage, link)
		case Builtin:
			g.Builtin = append(g.Builtin, link)
		default:
			g.Unresolved++
		}
	}
	return g
}
