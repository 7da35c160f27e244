package htmlrender

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/apidoc/signature"
)

// RenderNode renders one symbol block. Overloaded functions render as a single
// block holding every declaration. An empty group yields nil.
func (c *Context) RenderNode(g docnode.Group) *html.Node {
	if len(g.Nodes) == 0 {
		return nil
	}
	n := g.Primary()
	s := c.symbolSection(n)
	if n.Kind == apidoc.KindFunction && g.IsOverloaded() {
		return c.overloads(s, g)
	}

	switch n.Kind {
	case apidoc.KindFunction:
		c.function(s, n.Name, n.FunctionDef, n.JSDoc)
		return s
	case apidoc.KindClass:
		c.class(s, n)
	case apidoc.KindInterface:
		c.iface(s, n)
	case apidoc.KindTypeAlias:
		c.signatureBlock(s, func(w *sigWriter) { w.typeAlias(n.Name, n.TypeAliasDef) })
		c.docs(s, n.JSDoc)
	case apidoc.KindEnum:
		c.enum(s, n)
	case apidoc.KindVariable:
		c.signatureBlock(s, func(w *sigWriter) { w.variable(n.Name, n.VariableDef) })
		c.docs(s, n.JSDoc)
	default:
		c.signatureBlock(s, func(w *sigWriter) { w.text(signature.Node(n)) })
		c.docs(s, n.JSDoc)
	}
	c.examples(s, n.JSDoc)
	return s
}

func (c *Context) symbolSection(n *apidoc.DocNode) *html.Node {
	heading := add(el("h3"),
		textEl("a", "#", "class", "anchor", "href", "#"+n.Name),
		txt(" "),
		textEl("code", n.Name),
	)
	if docnode.IsDeprecated(n.JSDoc) {
		add(heading, txt(" "), textEl("span", "deprecated", "class", "badge badge-deprecated"))
	}
	return add(el("section", "class", "api-symbol api-"+string(n.Kind), "id", n.Name), heading)
}

// overloads expands the first declaration and folds the rest into a
// disclosure element.
func (c *Context) overloads(s *html.Node, g docnode.Group) *html.Node {
	add(s.FirstChild, txt(" "), textEl("span", fmt.Sprintf("%d overloads", len(g.Nodes)), "class", "overload-count"))

	overload := func(i int) *html.Node {
		n := g.Nodes[i]
		o := add(el("div", "class", "api-overload"), textEl("h4", fmt.Sprintf("Overload %d", i+1)))
		c.function(o, n.Name, n.FunctionDef, n.JSDoc)
		return o
	}

	add(s, overload(0))
	rest := len(g.Nodes) - 1
	label := fmt.Sprintf("%d more overloads", rest)
	if rest == 1 {
		label = "1 more overload"
	}
	details := add(el("details", "class", "api-overloads"), textEl("summary", label))
	for i := 1; i < len(g.Nodes); i++ {
		add(details, overload(i))
	}
	return add(s, details)
}

func (c *Context) function(parent *html.Node, name string, def *apidoc.FunctionDef, js *apidoc.JSDoc) {
	c.signatureBlock(parent, func(w *sigWriter) { w.function(name, def) })
	c.docs(parent, js)
	if def != nil {
		c.params(parent, def.Params, js)
		c.returns(parent, def.ReturnType, js)
	}
	c.examples(parent, js)
}

func (c *Context) class(s *html.Node, n *apidoc.DocNode) {
	def := docnode.PublicMembers(n.ClassDef)
	c.signatureBlock(s, func(w *sigWriter) { w.class(n.Name, def) })
	c.docs(s, n.JSDoc)
	if def == nil {
		return
	}
	if len(def.Constructors) > 0 {
		items := make([]*html.Node, 0, len(def.Constructors))
		for i := range def.Constructors {
			ctor := &def.Constructors[i]
			items = append(items, c.member(func(w *sigWriter) { w.constructor(ctor) }, ctor.JSDoc))
		}
		c.memberList(s, "Constructors", items)
	}
	if len(def.Properties) > 0 {
		items := make([]*html.Node, 0, len(def.Properties))
		for i := range def.Properties {
			p := &def.Properties[i]
			items = append(items, c.member(func(w *sigWriter) { w.property(p) }, p.JSDoc))
		}
		c.memberList(s, "Properties", items)
	}
	if len(def.Methods) > 0 {
		items := make([]*html.Node, 0, len(def.Methods))
		for i := range def.Methods {
			m := &def.Methods[i]
			items = append(items, c.member(func(w *sigWriter) { w.method(m) }, m.JSDoc))
		}
		c.memberList(s, "Methods", items)
	}
}

func (c *Context) iface(s *html.Node, n *apidoc.DocNode) {
	def := n.InterfaceDef
	c.signatureBlock(s, func(w *sigWriter) { w.iface(n.Name, def) })
	c.docs(s, n.JSDoc)
	if def == nil {
		return
	}
	var props, methods []*html.Node
	for i := range def.CallSignatures {
		cs := &def.CallSignatures[i]
		methods = append(methods, c.member(func(w *sigWriter) { w.callSignature(cs, 0) }, cs.JSDoc))
	}
	for i := range def.IndexSignatures {
		is := &def.IndexSignatures[i]
		props = append(props, c.member(func(w *sigWriter) { w.indexSignature(is, 0) }, nil))
	}
	for i := range def.Properties {
		p := &def.Properties[i]
		props = append(props, c.member(func(w *sigWriter) { w.interfaceProperty(p, 0) }, p.JSDoc))
	}
	for i := range def.Methods {
		m := &def.Methods[i]
		methods = append(methods, c.member(func(w *sigWriter) { w.interfaceMethod(m, 0) }, m.JSDoc))
	}
	c.memberList(s, "Properties", props)
	c.memberList(s, "Methods", methods)
}

func (c *Context) enum(s *html.Node, n *apidoc.DocNode) {
	c.signatureBlock(s, func(w *sigWriter) { w.text(signature.Enum(n.Name, n.EnumDef)) })
	c.docs(s, n.JSDoc)
	if n.EnumDef == nil {
		return
	}
	items := make([]*html.Node, 0, len(n.EnumDef.Members))
	for i := range n.EnumDef.Members {
		m := &n.EnumDef.Members[i]
		items = append(items, c.member(func(w *sigWriter) { w.enumMember(m) }, m.JSDoc))
	}
	c.memberList(s, "Members", items)
}

// signatureBlock appends <pre class="api-signature"><code>...</code></pre>.
func (c *Context) signatureBlock(parent *html.Node, write func(w *sigWriter)) {
	w := newSigWriter(c.resolver, el("code", "class", "language-ts"))
	write(w)
	add(parent, add(el("pre", "class", "api-signature"), w.done()))
}

func (c *Context) member(write func(w *sigWriter), js *apidoc.JSDoc) *html.Node {
	w := newSigWriter(c.resolver, el("code"))
	write(w)
	li := add(el("li"), w.done())
	if summary := docnode.DescriptionSummary(js); summary != "" {
		add(li, txt(" "), c.inline(summary))
	}
	return li
}

func (c *Context) memberList(parent *html.Node, title string, items []*html.Node) {
	if len(items) == 0 {
		return
	}
	add(parent, textEl("h4", title), add(el("ul", "class", "api-members"), items...))
}

func (c *Context) docs(parent *html.Node, js *apidoc.JSDoc) {
	if msg, ok := docnode.Deprecation(js); ok {
		notice := add(el("div", "class", "api-deprecated"), textEl("strong", "Deprecated"))
		if msg != "" {
			add(notice, txt(": "), c.inline(msg))
		}
		add(parent, notice)
	}
	add(parent, c.prose(docnode.Description(js), "api-description"))
}

// inline renders a single-paragraph text as a span without the paragraph
// wrapper goldmark produces.
func (c *Context) inline(text string) *html.Node {
	span := el("span", "class", "api-summary")
	block := c.prose(text, "")
	if block == nil {
		return span
	}
	if p := block.FirstChild; p != nil && p.NextSibling == nil && p.Type == html.ElementNode && p.Data == "p" {
		block = p
	}
	for ch := block.FirstChild; ch != nil; {
		next := ch.NextSibling
		block.RemoveChild(ch)
		span.AppendChild(ch)
		ch = next
	}
	return span
}

func (c *Context) params(parent *html.Node, ps []apidoc.ParamDef, js *apidoc.JSDoc) {
	if len(ps) == 0 {
		return
	}
	docs := docnode.ParamDocs(js)
	list := el("ul", "class", "api-params")
	for i := range ps {
		p := &ps[i]
		name := signature.ParamName(p)
		if signature.ParamOptional(p) {
			name += "?"
		}
		w := newSigWriter(c.resolver, el("code"))
		w.typ(signature.ParamType(p), 0)
		li := add(el("li"), textEl("code", name, "class", "param-name"), txt(": "), w.done())
		if doc := docs[signature.ParamBareName(p)]; doc != "" {
			add(li, txt(" "), c.inline(doc))
		}
		add(list, li)
	}
	add(parent, textEl("h4", "Parameters"), list)
}

func (c *Context) returns(parent *html.Node, t *apidoc.TsTypeDef, js *apidoc.JSDoc) {
	doc := docnode.ReturnDoc(js)
	if t == nil && doc == "" {
		return
	}
	w := newSigWriter(c.resolver, el("code"))
	w.typ(t, 0)
	p := add(el("p", "class", "api-returns"), w.done())
	if doc != "" {
		add(p, txt(" "), c.inline(doc))
	}
	add(parent, textEl("h4", "Returns"), p)
}

func (c *Context) examples(parent *html.Node, js *apidoc.JSDoc) {
	examples := docnode.Examples(js)
	if len(examples) == 0 {
		return
	}
	div := add(el("div", "class", "api-examples"), textEl("h4", "Examples"))
	for _, ex := range examples {
		if strings.HasPrefix(ex, "```") {
			if out, err := c.md.Render([]byte(ex)); err == nil {
				add(div, fragment(out)...)
				continue
			}
		}
		add(div, add(el("pre"), textEl("code", ex, "class", "language-ts")))
	}
	add(parent, div)
}
