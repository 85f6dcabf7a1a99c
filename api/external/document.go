/* document.go
 * Contains the DocumentParser capability used by the HTML adapters. Adapters only talk to the Node interface so
 * the goquery implementation can be swapped without touching any adapter
 * Authors: Zachary Bower
 */

package external

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is the minimal view of an HTML element that the adapters need
type Node interface {
	Find(selector string) []Node
	Text() string
	Attr(name string) (string, bool)
}

// DocumentParser turns an HTML string into a queryable root Node
type DocumentParser interface {
	Parse(html string) (Node, error)
}

// GoqueryParser is the default DocumentParser, backed by goquery
type GoqueryParser struct{}

// Parse parses html with goquery
// Preconditions: Receives string containing an html document or fragment
// Postconditions: Returns the root Node, or an error if the reader could not be parsed
func (GoqueryParser) Parse(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}
	return goqueryNode{sel: doc.Selection}, nil
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n goqueryNode) Find(selector string) []Node {
	var nodes []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: s})
	})
	return nodes
}

// Text returns the element text with runs of whitespace collapsed to one space
func (n goqueryNode) Text() string {
	return strings.Join(strings.Fields(n.sel.Text()), " ")
}

func (n goqueryNode) Attr(name string) (string, bool) {
	val, ok := n.sel.Attr(name)
	return strings.TrimSpace(val), ok
}

// firstText returns the text of the first match of selector under node, or "" if there is none
func firstText(node Node, selector string) string {
	found := node.Find(selector)
	if len(found) == 0 {
		return ""
	}
	return found[0].Text()
}
