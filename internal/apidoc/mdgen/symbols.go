package mdgen

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/apidoc/signature"
	"git.home.luguber.info/inful/docsite/internal/apidoc/typeref"
)

func (g *generator) symbol(n *apidoc.DocNode) {
	g.block(fmt.Sprintf("### `%s`", n.Name))

	switch n.Kind {
	case apidoc.KindFunction:
		g.functionBody(n.Name, n.FunctionDef, n.JSDoc)
		return
	case apidoc.KindClass:
		def := docnode.PublicMembers(n.ClassDef)
		g.fence(signature.Class(n.Name, def))
		g.collector.AddSet(typeref.FromClass(def))
		g.docs(n.JSDoc)
		g.classMembers(def)
	case apidoc.KindInterface:
		g.fence(signature.Interface(n.Name, n.InterfaceDef))
		g.collector.AddSet(typeref.FromInterface(n.InterfaceDef))
		g.docs(n.JSDoc)
		g.interfaceMembers(n.InterfaceDef)
	case apidoc.KindTypeAlias:
		g.fence(signature.TypeAlias(n.Name, n.TypeAliasDef))
		g.collector.AddSet(typeref.FromTypeAlias(n.TypeAliasDef))
		g.docs(n.JSDoc)
	case apidoc.KindEnum:
		g.fence(signature.Enum(n.Name, n.EnumDef))
		g.collector.AddSet(typeref.FromEnum(n.EnumDef))
		g.docs(n.JSDoc)
		g.enumMembers(n.EnumDef)
	case apidoc.KindVariable:
		g.fence(signature.Variable(n.Name, n.VariableDef))
		g.collector.AddSet(typeref.FromVariable(n.VariableDef))
		g.docs(n.JSDoc)
	}
	g.examples(n.JSDoc)
}

// overloads renders every declaration of an overloaded function in one block.
func (g *generator) overloads(group docnode.Group) {
	g.block(fmt.Sprintf("### `%s` (%d overloads)", group.Key.Name, len(group.Nodes)))
	for i, n := range group.Nodes {
		g.block(fmt.Sprintf("**Overload %d:**", i+1))
		g.functionBody(n.Name, n.FunctionDef, n.JSDoc)
	}
}

func (g *generator) functionBody(name string, def *apidoc.FunctionDef, js *apidoc.JSDoc) {
	g.fence(signature.Function(name, def))
	g.collector.AddSet(typeref.FromFunction(def))
	g.docs(js)
	if def != nil {
		g.params(def.Params, js)
		g.returns(def.ReturnType, js)
	}
	g.examples(js)
}

func (g *generator) fence(sig string) {
	g.block("```ts\n" + sig + "\n```")
}

// docs writes the deprecation notice and description.
func (g *generator) docs(js *apidoc.JSDoc) {
	if msg, ok := docnode.Deprecation(js); ok {
		notice := "> **Deprecated**"
		if msg != "" {
			notice = "> **Deprecated:** " + g.inline(msg)
		}
		g.block(notice)
	}
	if desc := docnode.Description(js); desc != "" {
		g.block(g.inline(desc))
	}
}

func (g *generator) params(ps []apidoc.ParamDef, js *apidoc.JSDoc) {
	if len(ps) == 0 {
		return
	}
	docs := docnode.ParamDocs(js)
	lines := make([]string, 0, len(ps))
	for i := range ps {
		p := &ps[i]
		name := signature.ParamName(p)
		if signature.ParamOptional(p) {
			name += "?"
		}
		line := fmt.Sprintf("- `%s` (`%s`)", name, signature.Type(signature.ParamType(p)))
		if doc := docs[signature.ParamBareName(p)]; doc != "" {
			line += ": " + g.inline(doc)
		}
		lines = append(lines, line)
	}
	g.block("**Parameters:**")
	g.block(strings.Join(lines, "\n"))
}

func (g *generator) returns(t *apidoc.TsTypeDef, js *apidoc.JSDoc) {
	doc := docnode.ReturnDoc(js)
	if t == nil && doc == "" {
		return
	}
	line := "**Returns:** `" + signature.Type(t) + "`"
	if doc != "" {
		line += " — " + g.inline(doc)
	}
	g.block(line)
}

func (g *generator) examples(js *apidoc.JSDoc) {
	examples := docnode.Examples(js)
	if len(examples) == 0 {
		return
	}
	g.block("**Examples:**")
	for _, ex := range examples {
		if strings.HasPrefix(ex, "```") {
			g.block(ex)
			continue
		}
		g.fence(ex)
	}
}

func (g *generator) classMembers(def *apidoc.ClassDef) {
	if def == nil {
		return
	}
	if len(def.Constructors) > 0 {
		sigs := make([]string, 0, len(def.Constructors))
		for i := range def.Constructors {
			sigs = append(sigs, signature.Constructor(&def.Constructors[i]))
		}
		g.block("**Constructors:**")
		g.fence(strings.Join(sigs, "\n"))
		for i := range def.Constructors {
			if desc := docnode.Description(def.Constructors[i].JSDoc); desc != "" {
				g.block(g.inline(desc))
			}
		}
	}
	if len(def.Properties) > 0 {
		lines := make([]string, 0, len(def.Properties))
		for i := range def.Properties {
			p := &def.Properties[i]
			lines = append(lines, g.memberLine(signature.Property(p), p.JSDoc))
		}
		g.block("**Properties:**")
		g.block(strings.Join(lines, "\n"))
	}
	if len(def.Methods) > 0 {
		lines := make([]string, 0, len(def.Methods))
		for i := range def.Methods {
			m := &def.Methods[i]
			lines = append(lines, g.memberLine(signature.Method(m), m.JSDoc))
		}
		g.block("**Methods:**")
		g.block(strings.Join(lines, "\n"))
	}
}

func (g *generator) interfaceMembers(def *apidoc.InterfaceDef) {
	if def == nil {
		return
	}
	var props, methods []string
	for i := range def.CallSignatures {
		c := &def.CallSignatures[i]
		methods = append(methods, g.memberLine(signature.CallSignature(c), c.JSDoc))
	}
	for i := range def.IndexSignatures {
		props = append(props, "- `"+signature.IndexSignature(&def.IndexSignatures[i])+"`")
	}
	for i := range def.Properties {
		p := &def.Properties[i]
		props = append(props, g.memberLine(signature.InterfaceProperty(p), p.JSDoc))
	}
	for i := range def.Methods {
		m := &def.Methods[i]
		methods = append(methods, g.memberLine(signature.InterfaceMethod(m), m.JSDoc))
	}
	if len(props) > 0 {
		g.block("**Properties:**")
		g.block(strings.Join(props, "\n"))
	}
	if len(methods) > 0 {
		g.block("**Methods:**")
		g.block(strings.Join(methods, "\n"))
	}
}

func (g *generator) enumMembers(def *apidoc.EnumDef) {
	if def == nil || len(def.Members) == 0 {
		return
	}
	lines := make([]string, 0, len(def.Members))
	for i := range def.Members {
		m := &def.Members[i]
		lines = append(lines, g.memberLine(signature.EnumMember(m), m.JSDoc))
	}
	g.block("**Members:**")
	g.block(strings.Join(lines, "\n"))
}

// memberLine formats "- `sig`" with the member's summary appended.
func (g *generator) memberLine(sig string, js *apidoc.JSDoc) string {
	line := "- `" + sig + "`"
	if summary := docnode.DescriptionSummary(js); summary != "" {
		line += " — " + g.inline(summary)
	}
	return line
}
