// Package sanitizer strips untrusted rich-text HTML down to a safe subset
// before it is persisted. The policy is an allow-list: anything not named
// here is dropped, never escaped through.
package sanitizer

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	reColor    = regexp.MustCompile(`^(#[0-9a-fA-F]+|rgb\((\d{1,3},\s?){2}\d{1,3}\))$`)
	reFontSize = regexp.MustCompile(`^\d+(?:px|em|%)$`)
)

type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// RichText sanitizes note content. The bluemonday policy is safe for
// concurrent use, so a single instance is shared across requests.
type RichText struct {
	policy *bluemonday.Policy
}

// NewRichText builds the note content policy:
//   - formatting tags emitted by rich-text editors (p, b, i, em, strong, u,
//     blockquote, code, lists, h1-h6, span, br, hr)
//   - links with href/name; rel and target are force-rewritten afterwards
//   - images with src/alt/title/width/height, including inline data: URIs
//   - inline styles restricted to color, background-color, text-align and
//     font-size, each value checked against a pattern; declarations that do
//     not match are dropped individually
//   - http, https and mailto URL schemes, plus protocol-relative URLs
func NewRichText() *RichText {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "b", "i", "em", "strong", "u",
		"blockquote", "code",
		"ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"span", "br", "hr",
	)

	p.AllowAttrs("href", "name").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")

	p.AllowAttrs("style").Globally()
	p.AllowStyles("color", "background-color").Matching(reColor).Globally()
	p.AllowStyles("text-align").MatchingEnum("left", "right", "center", "justify").Globally()
	p.AllowStyles("font-size").Matching(reFontSize).Globally()

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.AllowDataURIImages()

	return &RichText{policy: p}
}

// Sanitize returns the safe HTML subset of rawHTML. Every surviving anchor
// carries rel="noopener noreferrer" and target="_blank" regardless of what
// the input supplied. Idempotent: sanitizing already-sanitized content is a
// no-op.
func (s *RichText) Sanitize(rawHTML string) string {
	clean := s.policy.Sanitize(rawHTML)
	return forceLinkAttrs(clean)
}

// forceLinkAttrs rewrites every <a> in the sanitized fragment so that links
// open in a new tab without handing the opener to the target page.
func forceLinkAttrs(fragment string) string {
	if !strings.Contains(fragment, "<a") {
		return fragment
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return fragment
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteAnchors(n)
		if err := html.Render(&buf, n); err != nil {
			return fragment
		}
	}
	return buf.String()
}

func rewriteAnchors(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if a.Key == "rel" || a.Key == "target" {
				continue
			}
			attrs = append(attrs, a)
		}
		n.Attr = append(attrs,
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
			html.Attribute{Key: "target", Val: "_blank"},
		)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteAnchors(c)
	}
}
