package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTextParents are elements whose text never belongs to visible content.
var skippedTextParents = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// textNodes returns the trimmed, non-empty text nodes below the selection in document order.
func textNodes(sel *goquery.Selection) []string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if skippedTextParents[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return parts
}

// strippedText is the element text used for field values: text nodes joined by a single space.
func strippedText(sel *goquery.Selection) string {
	return strings.Join(textNodes(sel), " ")
}

// lineText keeps one text node per line so separators and line breaks stay visible
// to the employer heuristics.
func lineText(sel *goquery.Selection) string {
	return strings.Join(textNodes(sel), "\n")
}

// outerHTMLLower serializes the selection's first node, lower-cased. Errors yield "".
func outerHTMLLower(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return strings.ToLower(markup)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// prefix returns the first n characters of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// firstFollowing returns the first element after anchor in document order (its own
// descendants included) whose tag is one of tags.
func firstFollowing(doc *goquery.Document, anchor *html.Node, tags ...string) *goquery.Selection {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[t] = true
	}

	passed := false
	var found *html.Node
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if passed && n.Type == html.ElementNode && wanted[n.Data] {
			found = n
			return true
		}
		if n == anchor {
			passed = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, root := range doc.Nodes {
		if walk(root) {
			break
		}
	}
	if found == nil {
		return nil
	}
	return doc.FindNodes(found)
}
