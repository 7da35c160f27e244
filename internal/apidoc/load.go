package apidoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// IndexFileName is the name of the package index inside a data directory.
const IndexFileName = "index.json"

// LoadPackage reads and validates a single package document.
func LoadPackage(path string) (*PackageDocument, error) {
	// #nosec G304 -- path comes from configured source directories.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("package document not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read package document").
			WithContext("path", path).
			Build()
	}
	doc, err := DecodePackage(data)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// DecodePackage parses and validates a package document from JSON.
func DecodePackage(data []byte) (*PackageDocument, error) {
	var doc PackageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse package document").Build()
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadIndex reads an index document.
func LoadIndex(path string) (*Index, error) {
	// #nosec G304 -- path comes from configured source directories.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("index document not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read index document").
			WithContext("path", path).
			Build()
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse index document").
			WithContext("path", path).
			Build()
	}
	return &idx, nil
}

// LoadDir loads every package document in dir.
//
// Registration order matters for cross-package linking (first registered wins),
// so when dir contains an index.json its package order is used; remaining files
// follow in lexical filename order.
func LoadDir(dir string) ([]*PackageDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read package directory").
			WithContext("path", dir).
			Build()
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" || e.Name() == IndexFileName {
			continue
		}
		files = append(files, e.Name())
	}
	slices.Sort(files)

	docs := make([]*PackageDocument, 0, len(files))
	byName := make(map[string]*PackageDocument, len(files))
	for _, f := range files {
		doc, err := LoadPackage(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		byName[doc.Name] = doc
	}

	idx, err := LoadIndex(filepath.Join(dir, IndexFileName))
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return docs, nil
		}
		return nil, err
	}
	return orderByIndex(docs, byName, idx), nil
}

func orderByIndex(docs []*PackageDocument, byName map[string]*PackageDocument, idx *Index) []*PackageDocument {
	ordered := make([]*PackageDocument, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, entry := range idx.Packages {
		if doc, ok := byName[entry.Name]; ok && !seen[entry.Name] {
			ordered = append(ordered, doc)
			seen[entry.Name] = true
		}
	}
	for _, doc := range docs {
		if !seen[doc.Name] {
			ordered = append(ordered, doc)
			seen[doc.Name] = true
		}
	}
	return ordered
}

// Validate checks the structural invariants the renderers rely on: a package
// name usable as a single path segment, known node kinds, and a payload
// matching each node's kind.
func Validate(doc *PackageDocument) error {
	if strings.TrimSpace(doc.Name) == "" {
		return errors.ValidationError("package document has no name").Build()
	}
	if err := ValidateName(doc.Name); err != nil {
		return err
	}
	for i := range doc.Nodes {
		if err := validateNode(&doc.Nodes[i]); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid node").
				WithContext("package", doc.Name).
				WithContext("index", i).
				WithContext("symbol", doc.Nodes[i].Name).
				Build()
		}
	}
	return nil
}

// ValidateName rejects package names that cannot serve as one output path
// segment: names with path separators, leading dots or control characters.
func ValidateName(name string) error {
	bad := strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\:`) ||
		strings.ContainsFunc(name, unicode.IsControl)
	if bad {
		return errors.ValidationError("package name is not a valid path segment").
			WithContext("package", name).
			Build()
	}
	return nil
}

func validateNode(n *DocNode) error {
	if !n.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", n.Kind)
	}
	missing := false
	switch n.Kind {
	case KindFunction:
		missing = n.FunctionDef == nil
	case KindClass:
		missing = n.ClassDef == nil
	case KindInterface:
		missing = n.InterfaceDef == nil
	case KindTypeAlias:
		missing = n.TypeAliasDef == nil
	case KindEnum:
		missing = n.EnumDef == nil
	case KindVariable:
		missing = n.VariableDef == nil
	}
	if missing {
		return fmt.Errorf("kind %q without matching definition", n.Kind)
	}
	return nil
}

// WritePackage serializes doc as indented JSON at path.
func WritePackage(path string, doc *PackageDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode package document").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write package document").
			WithContext("path", path).
			Build()
	}
	return nil
}
