package label

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hasCodeBlock reports whether n contains a <code> nested in a <pre>.
func hasCodeBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		if c.DataAtom == atom.Pre && containsElement(c, atom.Code) {
			return true
		}

		if hasCodeBlock(c) {
			return true
		}
	}

	return false
}

func containsElement(n *html.Node, a atom.Atom) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == a || containsElement(c, a)) {
			return true
		}
	}

	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val

			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func hasClass(n *html.Node, class string) bool {
	classes, _ := attr(n, "class")

	return slices.Contains(strings.Fields(classes), class)
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}

	classes, _ := attr(n, "class")
	setAttr(n, "class", strings.TrimSpace(classes+" "+class))
}

func removeClass(n *html.Node, class string) {
	classes, ok := attr(n, "class")
	if !ok {
		return
	}

	kept := slices.DeleteFunc(strings.Fields(classes), func(c string) bool { return c == class })
	if len(kept) == 0 {
		removeAttr(n, "class")

		return
	}

	setAttr(n, "class", strings.Join(kept, " "))
}
