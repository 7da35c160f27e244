package narrative

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Page is one narrative document.
type Page struct {
	Slug        string
	Title       string
	Description string
	Weight      int
	Draft       bool
	// Body is the markdown without frontmatter.
	Body []byte
	// HTML is the rendered body.
	HTML     string
	Headings []Heading
	Path     string
}

// ParsePage splits frontmatter, derives the title and renders the body.
// Pages without a title use their first level-1 heading, then the slug.
func (r *Renderer) ParsePage(slug string, content []byte) (*Page, error) {
	fm, body, err := SplitFrontmatter(content)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "invalid frontmatter").
			WithContext("slug", slug).
			Build()
	}
	meta, err := ParseMeta(fm)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "invalid frontmatter YAML").
			WithContext("slug", slug).
			Build()
	}

	rendered, err := r.Render(body)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render narrative page").
			WithContext("slug", slug).
			Build()
	}

	title := meta.Title
	if title == "" {
		if h1 := r.Headings(body, 1); len(h1) > 0 {
			title = h1[0].Text
		}
	}
	if title == "" {
		title = titleFromSlug(slug)
	}

	return &Page{
		Slug:        slug,
		Title:       title,
		Description: meta.Description,
		Weight:      meta.Weight,
		Draft:       meta.Draft,
		Body:        bytes.TrimLeft(body, "\r\n"),
		HTML:        rendered,
		Headings:    r.Headings(body, 2),
	}, nil
}

// LoadDir reads every *.md file under dir. Drafts are skipped. Pages are
// ordered by weight, then title. A missing directory yields no pages.
func (r *Renderer) LoadDir(dir string) ([]*Page, error) {
	var pages []*Page
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		page, err := r.ParsePage(Slug(rel), content)
		if err != nil {
			return err
		}
		if page.Draft {
			return nil
		}
		page.Path = path
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if derrors.IsClassified(err) {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read narrative docs").
			WithContext("dir", dir).
			Build()
	}

	slices.SortStableFunc(pages, func(a, b *Page) int {
		if a.Weight != b.Weight {
			return a.Weight - b.Weight
		}
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return pages, nil
}

// Slug derives a URL slug from a path relative to the docs root:
// "guides/Getting Started.md" becomes "guides/getting-started".
func Slug(rel string) string {
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), " ", "-")
	}
	slug := strings.Join(parts, "/")
	if strings.HasSuffix(slug, "/index") {
		slug = strings.TrimSuffix(slug, "/index")
	}
	return slug
}

func titleFromSlug(slug string) string {
	base := slug[strings.LastIndex(slug, "/")+1:]
	return cases.Title(language.English).String(strings.ReplaceAll(base, "-", " "))
}
