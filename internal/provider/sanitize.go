package provider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// sanitizeSnippet strips HTML highlight markup (Google CSE wraps matched
// terms in <b>...</b>) from a provider-supplied title/snippet and
// collapses whitespace, so ArticleRef.Title never carries markup into
// downstream consumers.
func sanitizeSnippet(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>") {
		return strings.Join(strings.Fields(raw), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + raw + "</div>"))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	text := doc.Find("div").First().Text()
	return strings.Join(strings.Fields(text), " ")
}
