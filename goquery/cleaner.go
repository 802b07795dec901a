// Package goquery cleans WordPress post HTML with goquery and the
// golang.org/x/net/html tree it wraps.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wptransfer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Cleaner implements wptransfer.Cleaner at compile time.
var _ wptransfer.Cleaner = (*Cleaner)(nil)

var (
	leadingSpaceRe = regexp.MustCompile(`(?m)^[ \t\r\f\v]+`)
	blankLinesRe   = regexp.MustCompile(`\n{3,}`)
	paraOpenRe     = regexp.MustCompile(`<p>\s+`)
	paraCloseRe    = regexp.MustCompile(`\s+</p>`)
)

// blockElements get a word break in extracted text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Blockquote: true,
	atom.Tr: true, atom.Td: true, atom.Th: true, atom.Figcaption: true,
}

// Cleaner removes page-builder markup from post HTML according to a
// wptransfer.CleanPolicy.
type Cleaner struct {
	remove          string
	dropClasses     []string
	wrapperClasses  []string
	stripAttrs      map[string]bool
	stripPrefixes   []string
	emptyContainers map[string]bool
	unwrap          string
}

// NewCleaner creates a Cleaner for the given policy.
func NewCleaner(policy wptransfer.CleanPolicy) *Cleaner {
	c := &Cleaner{
		remove:          strings.Join(policy.RemoveElements, ", "),
		dropClasses:     lowerAll(policy.DropClasses),
		wrapperClasses:  lowerAll(policy.WrapperClasses),
		stripAttrs:      make(map[string]bool),
		stripPrefixes:   lowerAll(policy.StripAttributePrefixes),
		emptyContainers: make(map[string]bool),
		unwrap:          strings.Join(policy.UnwrapElements, ", "),
	}
	for _, a := range policy.StripAttributes {
		c.stripAttrs[strings.ToLower(a)] = true
	}
	for _, e := range policy.EmptyContainers {
		c.emptyContainers[strings.ToLower(e)] = true
	}
	return c
}

// Clean returns the simplified HTML. The result is always well-formed, and
// cleaning it again returns it unchanged.
func (c *Cleaner) Clean(s string) (string, error) {
	doc, err := parseFragment(s)
	if err != nil {
		return "", err
	}
	sel := doc.Selection

	if c.remove != "" {
		sel.Find(c.remove).Remove()
	}

	// Class-based rules run before attributes are stripped.
	classed := sel.Find("[class]")
	classed.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasClassSubstring(s, c.dropClasses)
	}).Remove()
	classed.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasClassSubstring(s, c.wrapperClasses)
	}).Each(func(_ int, s *goquery.Selection) {
		unwrapNode(s.Get(0))
	})

	root := sel.Get(0)
	c.stripAttributes(root)
	c.removeEmpty(root)

	if c.unwrap != "" {
		sel.Find(c.unwrap).Each(func(_ int, s *goquery.Selection) {
			unwrapNode(s.Get(0))
		})
	}
	removeComments(root)

	out, err := sel.Html()
	if err != nil {
		return "", err
	}
	return normalizeWhitespace(out), nil
}

// Text returns the visible text of s: scripts and styles dropped, entities
// decoded, whitespace collapsed to single spaces.
func (c *Cleaner) Text(s string) (string, error) {
	return PlainText(s)
}

// PlainText returns the visible text of an HTML fragment.
func PlainText(s string) (string, error) {
	doc, err := parseFragment(s)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if blockElements[n.DataAtom] {
				b.WriteByte(' ')
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			b.WriteByte(' ')
		}
	}
	for ch := doc.Get(0).FirstChild; ch != nil; ch = ch.NextSibling {
		walk(ch)
	}

	return strings.Join(strings.Fields(b.String()), " "), nil
}

// parseFragment parses s as the content of a <body> element and returns a
// document rooted at a synthetic container holding the parsed nodes.
func parseFragment(s string) (*goquery.Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, wptransfer.Errorf(wptransfer.EINVALID, "failed to parse HTML: %v", err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func (c *Cleaner) stripAttributes(n *html.Node) {
	if n.Type == html.ElementNode && len(n.Attr) > 0 {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if !c.strips(a.Key) {
				kept = append(kept, a)
			}
		}
		n.Attr = kept
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.stripAttributes(ch)
	}
}

func (c *Cleaner) strips(key string) bool {
	key = strings.ToLower(key)
	if c.stripAttrs[key] {
		return true
	}
	for _, p := range c.stripPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// removeEmpty drops empty containers bottom-up so that wrappers holding only
// empty wrappers disappear too.
func (c *Cleaner) removeEmpty(n *html.Node) {
	for ch := n.FirstChild; ch != nil; {
		next := ch.NextSibling
		c.removeEmpty(ch)
		if ch.Type == html.ElementNode && c.emptyContainers[ch.Data] && isBlank(ch) {
			n.RemoveChild(ch)
		}
		ch = next
	}
}

func isBlank(n *html.Node) bool {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.CommentNode {
			continue
		}
		if ch.Type != html.TextNode || strings.TrimSpace(ch.Data) != "" {
			return false
		}
	}
	return true
}

func removeComments(n *html.Node) {
	for ch := n.FirstChild; ch != nil; {
		next := ch.NextSibling
		if ch.Type == html.CommentNode {
			n.RemoveChild(ch)
		} else {
			removeComments(ch)
		}
		ch = next
	}
}

// unwrapNode replaces n with its children.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for ch := n.FirstChild; ch != nil; ch = n.FirstChild {
		n.RemoveChild(ch)
		parent.InsertBefore(ch, n)
	}
	parent.RemoveChild(n)
}

func hasClassSubstring(s *goquery.Selection, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	class := strings.ToLower(s.AttrOr("class", ""))
	for _, needle := range needles {
		if needle != "" && strings.Contains(class, needle) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = leadingSpaceRe.ReplaceAllString(s, "")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	s = paraOpenRe.ReplaceAllString(s, "<p>")
	s = paraCloseRe.ReplaceAllString(s, "</p>")
	return strings.TrimSpace(s)
}

func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, strings.ToLower(s))
	}
	return out
}
