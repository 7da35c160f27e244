// Package xref classifies referenced type names and resolves them to link
// targets: an in-page anchor for local exports, another package's page for
// cross-package exports, or external documentation for built-in types.
package xref

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/util/sets"
)

// Classification is the outcome of resolving one name. Every name receives
// exactly one classification.
type Classification int

const (
	Unresolved Classification = iota
	Local
	CrossPackage
	Builtin
)

func (c Classification) String() string {
	switch c {
	case Local:
		return "local"
	case CrossPackage:
		return "cross_package"
	case Builtin:
		return "builtin"
	default:
		return "unresolved"
	}
}

// Link is a resolved reference. URL is empty for unresolved names.
type Link struct {
	Name  string
	Class Classification
	URL   string
	// Package and Specifier identify the owning package of a cross-package link.
	Package   string
	Specifier string
}

// PackageURL returns the canonical page path of a package relative to baseURL.
func PackageURL(baseURL, pkg string) string {
	return strings.TrimRight(baseURL, "/") + "/api/" + pkg
}

// Resolver classifies names against the package being rendered, the
// cross-package index and the built-in table. Safe for concurrent use.
type Resolver struct {
	current *apidoc.PackageDocument
	local   sets.Set[string]
	index   *PackageIndex
	baseURL string
}

// NewResolver returns a resolver for rendering current. index may be nil when
// no sibling packages are known.
func NewResolver(current *apidoc.PackageDocument, index *PackageIndex, baseURL string) *Resolver {
	local := sets.New[string]()
	if current != nil {
		for _, n := range docnode.PublicNodes(current) {
			if docnode.IsLinkable(n) {
				local.Add(n.Name)
			}
		}
	}
	return &Resolver{current: current, local: local, index: index, baseURL: baseURL}
}

// Classify checks local exports first, then other packages, then built-ins.
func (r *Resolver) Classify(name string) Classification {
	class, _ := r.classify(name)
	return class
}

func (r *Resolver) classify(name string) (Classification, *apidoc.PackageDocument) {
	if r.local.Has(name) {
		return Local, r.current
	}
	if owner, ok := r.index.Owner(name); ok && !r.isCurrent(owner) {
		return CrossPackage, owner
	}
	if _, ok := Builtins[name]; ok {
		return Builtin, nil
	}
	return Unresolved, nil
}

func (r *Resolver) isCurrent(doc *apidoc.PackageDocument) bool {
	return r.current != nil && doc.Name == r.current.Name
}

// Resolve classifies name and computes its link target.
func (r *Resolver) Resolve(name string) Link {
	class, owner := r.classify(name)
	link := Link{Name: name, Class: class}
	switch class {
	case Local:
		link.URL = "#" + name
	case CrossPackage:
		link.URL = PackageURL(r.baseURL, owner.Name) + "#" + name
		link.Package = owner.Name
		link.Specifier = owner.Specifier
	case Builtin:
		link.URL = Builtins[name]
	}
	return link
}
