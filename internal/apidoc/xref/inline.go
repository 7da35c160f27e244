package xref

import (
	"regexp"
	"strings"
)

// {@link Target}, {@link Target|label}, {@link Target label}, {@linkcode Target}, {@linkplain Target}
var inlineLinkRe = regexp.MustCompile(`\{@(link|linkcode|linkplain)\s+([^\s|}]+)(?:\s*\|\s*([^}]*?)|\s+([^}]*?))?\s*\}`)

// ProcessInlineLinks rewrites JSDoc inline link tags in text into markdown
// links. Named targets are classified like signature references; unresolved
// names become code spans.
func ProcessInlineLinks(text string, r *Resolver) string {
	return RewriteInlineLinks(text, r, nil)
}

// RewriteInlineLinks is ProcessInlineLinks reporting every resolved symbol
// link to visit, which may be nil. Plain URL targets are not reported.
func RewriteInlineLinks(text string, r *Resolver, visit func(Link)) string {
	if !strings.Contains(text, "{@link") {
		return text
	}
	return inlineLinkRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineLinkRe.FindStringSubmatch(m)
		tag, target := sub[1], sub[2]
		label := strings.TrimSpace(sub[3])
		if label == "" {
			label = strings.TrimSpace(sub[4])
		}
		code := tag == "linkcode" || (tag == "link" && label == "")
		if label == "" {
			label = target
		}

		if isURL(target) {
			return markdownLink(label, target, false)
		}

		// Member references like Client.connect link to the owning symbol.
		base, _, _ := strings.Cut(target, ".")
		link := r.Resolve(base)
		if link.Class == Unresolved {
			return "`" + label + "`"
		}
		if visit != nil {
			visit(link)
		}
		return markdownLink(label, link.URL, code)
	})
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

func markdownLink(label, href string, code bool) string {
	if code {
		label = "`" + label + "`"
	}
	return "[" + label + "](" + href + ")"
}

// CSSClass returns the class list used for a link of the given classification.
func CSSClass(c Classification) string {
	switch c {
	case Local:
		return "type-link type-local"
	case CrossPackage:
		return "type-link type-cross"
	case Builtin:
		return "type-link type-builtin"
	default:
		return ""
	}
}
