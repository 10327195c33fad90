package htmlutil

import (
	"bytes"

	"flightscout/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node below node, in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Text is the collapsed text of the first node in sel, "" when sel is empty.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return textutil.Collapse(GetText(sel.Nodes[0]))
}

// Texts returns the collapsed text of every node in sel, skipping blanks.
func Texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		text := textutil.Collapse(GetText(n))
		if text == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// Attr is the collapsed value of attribute key on the first node in sel.
func Attr(sel *goquery.Selection, key string) string {
	value, ok := sel.First().Attr(key)
	if !ok {
		return ""
	}
	return textutil.Collapse(value)
}
