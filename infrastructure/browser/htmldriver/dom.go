package htmldriver

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// walk visits n and its descendants depth first; fn returning false stops the walk
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func descendants(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) bool {
			if d.Type == html.ElementNode && match(d) {
				found = append(found, d)
			}
			return true
		})
	}
	return found
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func attrOr(n *html.Node, name, fallback string) string {
	if v, ok := attr(n, name); ok {
		return v
	}
	return fallback
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != name {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

func hasClass(n *html.Node, class string) bool {
	classes, _ := attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func isInput(n *html.Node, kind string) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Input {
		return false
	}
	t, _ := attr(n, "type")
	return strings.EqualFold(t, kind)
}

func editable(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Textarea:
		return true
	case atom.Input:
		t := strings.ToLower(attrOr(n, "type", "text"))
		switch t {
		case "checkbox", "radio", "submit", "button", "reset", "image", "hidden", "file":
			return false
		}
		return true
	}
	return false
}

func ancestor(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return p
		}
	}
	return nil
}

func root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// hidden reports whether n itself is hidden, ignoring its ancestors
func hidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if _, ok := attr(n, "hidden"); ok {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(attrOr(n, "style", "")), " ", "")
	if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
		return true
	}
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Title:
		return true
	}
	return isInput(n, "hidden")
}

func displayed(n *html.Node) bool {
	for c := n; c != nil; c = c.Parent {
		if hidden(c) {
			return false
		}
	}
	return true
}

func block(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.P, atom.Li, atom.Ul, atom.Ol, atom.Tr, atom.Table, atom.Thead, atom.Tbody, atom.Tfoot,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Form, atom.Fieldset, atom.Legend,
		atom.Section, atom.Header, atom.Footer, atom.Nav, atom.Article, atom.Option, atom.Select:
		return true
	}
	return false
}

var whitespace = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// renderText approximates innerText: hidden subtrees are skipped, whitespace is
// collapsed per line, block boundaries become newlines and cells are space separated
func renderText(n *html.Node) string {
	var b strings.Builder
	var render func(*html.Node)
	render = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(whitespace.Replace(c.Data))
		case html.ElementNode, html.DocumentNode:
			if c != n && hidden(c) {
				return
			}
			if c.DataAtom == atom.Br {
				b.WriteString("\n")
				return
			}
			isBlock := block(c)
			if isBlock {
				b.WriteString("\n")
			}
			for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
				render(ch)
			}
			if isBlock {
				b.WriteString("\n")
			}
			if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
				b.WriteString(" ")
			}
		}
	}
	render(n)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// rawText is textContent: every descendant text node, untouched
func rawText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func value(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	switch n.DataAtom {
	case atom.Select:
		options := descendants(n, func(c *html.Node) bool { return c.DataAtom == atom.Option })
		for _, o := range options {
			if _, ok := attr(o, "selected"); ok {
				return value(o)
			}
		}
		if len(options) > 0 {
			return value(options[0])
		}
		return ""
	case atom.Option:
		if v, ok := attr(n, "value"); ok {
			return v
		}
		return strings.TrimSpace(rawText(n))
	}
	v, _ := attr(n, "value")
	return v
}
