package docnode

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// Description returns the trimmed description text, or "".
func Description(js *apidoc.JSDoc) string {
	if js == nil {
		return ""
	}
	return strings.TrimSpace(js.Doc)
}

// DescriptionSummary returns the first sentence of the description: the text
// up to a period followed by whitespace, otherwise the first line.
func DescriptionSummary(js *apidoc.JSDoc) string {
	desc := Description(js)
	if desc == "" {
		return ""
	}
	for i := 0; i < len(desc)-1; i++ {
		if desc[i] == '.' && isSpace(desc[i+1]) {
			return desc[:i+1]
		}
	}
	if line, _, found := strings.Cut(desc, "\n"); found {
		return strings.TrimSpace(line)
	}
	return desc
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// TagsByKind returns every tag of the given kind in declaration order.
func TagsByKind(js *apidoc.JSDoc, kind string) []apidoc.JSDocTag {
	if js == nil {
		return nil
	}
	var out []apidoc.JSDocTag
	for _, tag := range js.Tags {
		if tag.Kind == kind {
			out = append(out, tag)
		}
	}
	return out
}

// Examples returns the non-empty bodies of @example tags.
func Examples(js *apidoc.JSDoc) []string {
	var out []string
	for _, tag := range TagsByKind(js, apidoc.TagExample) {
		if body := strings.TrimSpace(tag.Doc); body != "" {
			out = append(out, body)
		}
	}
	return out
}

// ParamDocs maps parameter names to their @param descriptions. Tags missing a
// name or a description are skipped.
func ParamDocs(js *apidoc.JSDoc) map[string]string {
	out := make(map[string]string)
	for _, tag := range TagsByKind(js, apidoc.TagParam) {
		name := strings.TrimSpace(tag.Name)
		doc := strings.TrimSpace(tag.Doc)
		if name == "" || doc == "" {
			continue
		}
		out[name] = doc
	}
	return out
}

// ReturnDoc returns the first @return description, falling back to the first @returns.
func ReturnDoc(js *apidoc.JSDoc) string {
	if tags := TagsByKind(js, apidoc.TagReturn); len(tags) > 0 {
		return strings.TrimSpace(tags[0].Doc)
	}
	if tags := TagsByKind(js, apidoc.TagReturns); len(tags) > 0 {
		return strings.TrimSpace(tags[0].Doc)
	}
	return ""
}

// Deprecation returns the @deprecated message and whether the tag is present.
func Deprecation(js *apidoc.JSDoc) (string, bool) {
	tags := TagsByKind(js, apidoc.TagDeprecated)
	if len(tags) == 0 {
		return "", false
	}
	return strings.TrimSpace(tags[0].Doc), true
}

// IsDeprecated reports whether js carries a @deprecated tag.
func IsDeprecated(js *apidoc.JSDoc) bool {
	_, ok := Deprecation(js)
	return ok
}
