package docnode

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// IsPublicMember reports whether a class member is documented: not private
// by modifier, not underscore-prefixed and not an ECMAScript #private name.
func IsPublicMember(name string, access apidoc.Accessibility) bool {
	return access != apidoc.AccessibilityPrivate &&
		!strings.HasPrefix(name, "_") &&
		!strings.HasPrefix(name, "#")
}

// PublicMembers returns a shallow copy of def holding only documented
// constructors, properties and methods. Heritage clauses are kept as-is.
func PublicMembers(def *apidoc.ClassDef) *apidoc.ClassDef {
	if def == nil {
		return nil
	}
	out := *def
	out.Constructors = nil
	out.Properties = nil
	out.Methods = nil
	for _, c := range def.Constructors {
		if c.Accessibility != apidoc.AccessibilityPrivate {
			out.Constructors = append(out.Constructors, c)
		}
	}
	for _, p := range def.Properties {
		if IsPublicMember(p.Name, p.Accessibility) {
			out.Properties = append(out.Properties, p)
		}
	}
	for _, m := range def.Methods {
		if IsPublicMember(m.Name, m.Accessibility) {
			out.Methods = append(out.Methods, m)
		}
	}
	return &out
}
