package signature

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// Params formats a parameter list as "a: T, b?: U". Empty input yields "".
func Params(ps []apidoc.ParamDef) string {
	return params(ps, 0)
}

func params(ps []apidoc.ParamDef, depth int) string {
	if len(ps) == 0 {
		return ""
	}
	parts := make([]string, len(ps))
	for i := range ps {
		parts[i] = param(&ps[i], depth)
	}
	return strings.Join(parts, ", ")
}

func param(p *apidoc.ParamDef, depth int) string {
	name := ParamName(p)
	if ParamOptional(p) {
		name += "?"
	}
	return name + ": " + formatType(ParamType(p), depth)
}

// ParamName is the display name of a parameter. Destructured or unnamed
// parameters display as "_"; rest parameters are prefixed with "...".
func ParamName(p *apidoc.ParamDef) string {
	if p == nil {
		return "_"
	}
	switch p.Kind {
	case apidoc.ParamAssign:
		return ParamName(p.Left)
	case apidoc.ParamRest:
		if p.Arg != nil {
			return "..." + ParamName(p.Arg)
		}
		return "..._"
	}
	if p.Name != "" {
		return p.Name
	}
	return "_"
}

// ParamBareName is ParamName without a rest prefix, used as the key for @param docs.
func ParamBareName(p *apidoc.ParamDef) string {
	return strings.TrimPrefix(ParamName(p), "...")
}

// ParamOptional reports whether a parameter may be omitted. Parameters with a
// default value are optional.
func ParamOptional(p *apidoc.ParamDef) bool {
	if p == nil {
		return false
	}
	if p.Kind == apidoc.ParamAssign {
		return true
	}
	return p.Optional
}

// ParamType returns the declared type of a parameter, looking through
// default-value and rest wrappers.
func ParamType(p *apidoc.ParamDef) *apidoc.TsTypeDef {
	if p == nil {
		return nil
	}
	if p.TsType != nil {
		return p.TsType
	}
	switch p.Kind {
	case apidoc.ParamAssign:
		return ParamType(p.Left)
	case apidoc.ParamRest:
		return ParamType(p.Arg)
	}
	return nil
}

// TypeParams formats generic parameters as "<T extends C = D, U>". Empty input yields "".
func TypeParams(tps []apidoc.TsTypeParamDef) string {
	return typeParams(tps, 0)
}

func typeParams(tps []apidoc.TsTypeParamDef, depth int) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i := range tps {
		tp := &tps[i]
		s := tp.Name
		if tp.Constraint != nil {
			s += " extends " + formatType(tp.Constraint, depth)
		}
		if tp.Default != nil {
			s += " = " + formatType(tp.Default, depth)
		}
		parts[i] = s
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
