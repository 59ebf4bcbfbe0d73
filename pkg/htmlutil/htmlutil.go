package htmlutil

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under the given node, whitespace is
// kept as is.
func GetText(node *html.Node) string {
	var out strings.Builder
	writeText(&out, node)
	return out.String()
}

func writeText(out *strings.Builder, node *html.Node) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		out.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(out, child)
	}
}

type Anchor struct {
	Name string
	Url  *url.URL
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs into single spaces, trims and strips
// non-printable characters.
func CleanText(s string) string {
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// GetAnchors resolves the href of every anchor in the selection against the
// base url, anchors with unparseable hrefs are skipped.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		link, err := base.Parse(href)
		if err != nil {
			continue
		}

		anchors = append(anchors, Anchor{
			Name: CleanText(GetText(n)),
			Url:  link,
		})
	}
	return anchors
}
