package xref

import (
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// PackageIndex maps exported names to the package that declares them. The
// first registered package wins; later packages exporting the same name are
// shadowed for linking. The index is read-only after construction.
type PackageIndex struct {
	owners   map[string]*apidoc.PackageDocument
	packages []*apidoc.PackageDocument
	byName   map[string]*apidoc.PackageDocument
}

// NewPackageIndex registers docs in order. A nil logger uses slog.Default().
// Name collisions are reported at debug level and do not change the outcome.
func NewPackageIndex(logger *slog.Logger, docs ...*apidoc.PackageDocument) *PackageIndex {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &PackageIndex{
		owners: make(map[string]*apidoc.PackageDocument),
		byName: make(map[string]*apidoc.PackageDocument, len(docs)),
	}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, dup := idx.byName[doc.Name]; dup {
			logger.Debug("Duplicate package registration ignored", logfields.Package(doc.Name))
			continue
		}
		idx.byName[doc.Name] = doc
		idx.packages = append(idx.packages, doc)
		for _, n := range docnode.DeduplicateByName(docnode.PublicNodes(doc)) {
			if !docnode.IsLinkable(n) {
				continue
			}
			if owner, taken := idx.owners[n.Name]; taken {
				if owner != doc {
					logger.Debug("Exported name shadowed by earlier package",
						logfields.Symbol(n.Name),
						slog.String("owner", owner.Name),
						logfields.Package(doc.Name))
				}
				continue
			}
			idx.owners[n.Name] = doc
		}
	}
	return idx
}

// Owner returns the package whose export name resolves to.
func (idx *PackageIndex) Owner(name string) (*apidoc.PackageDocument, bool) {
	if idx == nil {
		return nil, false
	}
	doc, ok := idx.owners[name]
	return doc, ok
}

// Package returns a registered package by name.
func (idx *PackageIndex) Package(name string) (*apidoc.PackageDocument, bool) {
	if idx == nil {
		return nil, false
	}
	doc, ok := idx.byName[name]
	return doc, ok
}

// Packages returns registered packages in registration order.
func (idx *PackageIndex) Packages() []*apidoc.PackageDocument {
	if idx == nil {
		return nil
	}
	return idx.packages
}
