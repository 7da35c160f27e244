package htmlrender

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element; attrs are key/value pairs.
func el(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func txt(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// add appends children to parent, skipping nils, and returns parent.
func add(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// textEl builds an element holding a single text node.
func textEl(tag, text string, attrs ...string) *html.Node {
	return add(el(tag, attrs...), txt(text))
}

// fragment parses rendered HTML into nodes suitable for appending under a div.
func fragment(src string) []*html.Node {
	ctx := el("div")
	nodes, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return []*html.Node{txt(src)}
	}
	return nodes
}

// classifyLinks sets the type-link class on anchors under n whose href is a
// resolved symbol link.
func classifyLinks(n *html.Node, classes map[string]string) {
	if n.Type == html.ElementNode && n.Data == "a" {
		if class := classes[attr(n, "href")]; class != "" && attr(n, "class") == "" {
			n.Attr = append([]html.Attribute{{Key: "class", Val: class}}, n.Attr...)
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		classifyLinks(ch, classes)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
