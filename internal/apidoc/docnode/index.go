package docnode

import (
	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// BuildIndex derives the package index from loaded documents, preserving
// registration order. Counts cover public, deduplicated exports other than
// re-exported imports.
func BuildIndex(docs []*apidoc.PackageDocument) *apidoc.Index {
	idx := &apidoc.Index{Packages: make([]apidoc.IndexEntry, 0, len(docs))}
	for _, doc := range docs {
		counts := make(map[apidoc.Kind]int)
		for _, n := range DeduplicateByName(PublicNodes(doc)) {
			if n.Kind == apidoc.KindImport {
				continue
			}
			counts[n.Kind]++
		}
		idx.Packages = append(idx.Packages, apidoc.IndexEntry{
			Name:        doc.Name,
			Specifier:   doc.Specifier,
			Version:     doc.Version,
			Description: doc.Description,
			Counts:      counts,
		})
		if doc.GeneratedAt.After(idx.GeneratedAt) {
			idx.GeneratedAt = doc.GeneratedAt
		}
	}
	return idx
}
