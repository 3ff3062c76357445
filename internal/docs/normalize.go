package docs

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// Informative results returned in place of content.
const (
	EmptyHTMLContent   = "<e>Empty HTML content</e>"
	SimplifyFailed     = "<e>Page failed to be simplified from HTML</e>"
	conversionErrorFmt = "<e>Error converting HTML to Markdown: %v</e>"
)

// Policy lists the selectors the normalizer works with. Order matters for
// ContentLocators: the first one that matches wins.
type Policy struct {
	// StripTags are removed from the whole document before anything else.
	StripTags []string
	// ContentLocators find the main content region.
	ContentLocators []string
	// SecondaryWidgets are removed from inside the chosen region.
	SecondaryWidgets []string
}

func DefaultPolicy() Policy {
	return Policy{
		StripTags: []string{
			"script",
			"style",
			"noscript",
			"meta",
			"link",
			"footer",
			"nav",
			"aside",
			"header",
			"awsdocs-cookie-consent-container",
			"awsdocs-feedback-container",
			"awsdocs-page-header",
			"awsdocs-page-header-container",
			"awsdocs-filter-selector",
			"awsdocs-breadcrumb-container",
			"awsdocs-page-footer",
			"awsdocs-page-footer-container",
			"awsdocs-footer",
			"awsdocs-cookie-banner",
		},
		ContentLocators: []string{
			"main",
			"article",
			"#main-content",
			".main-content",
			"#content",
			".content",
			"div[role='main']",
			"#awsdocs-content",
			".awsui-article",
		},
		SecondaryWidgets: []string{
			"noscript",
			".prev-next",
			"#main-col-footer",
			".awsdocs-page-utilities",
			"#quick-feedback-yes",
			"#quick-feedback-no",
			".page-loading-indicator",
			"#tools-panel",
			".doc-cookie-banner",
			"awsdocs-copyright",
			"awsdocs-thumb-feedback",
		},
	}
}

// IsMarkup reports whether a response should be treated as HTML: the first
// 100 characters mention <html, the content type says text/html, or there is
// no content type at all.
func IsMarkup(raw, contentType string) bool {
	head := raw
	if r := []rune(raw); len(r) > 100 {
		head = string(r[:100])
	}
	return strings.Contains(head, "<html") ||
		strings.Contains(contentType, "text/html") ||
		contentType == ""
}

// Normalizer turns documentation HTML into markdown.
type Normalizer struct {
	policy Policy
}

func NewNormalizer(policy Policy) *Normalizer {
	return &Normalizer{policy: policy}
}

// Normalize returns raw unchanged when it is not markup. Markup is reduced to
// its main content and converted to markdown. Failures are reported as
// informative text, never as an error.
func (n *Normalizer) Normalize(raw, contentType string) string {
	if !IsMarkup(raw, contentType) {
		return raw
	}
	if raw == "" {
		return EmptyHTMLContent
	}

	content, err := n.toMarkdown(raw)
	if err != nil {
		return fmt.Sprintf(conversionErrorFmt, err)
	}
	if strings.TrimSpace(content) == "" {
		return SimplifyFailed
	}
	return content
}

func (n *Normalizer) toMarkdown(raw string) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", errors.Wrap(err, "parsing html")
	}

	for _, tag := range n.policy.StripTags {
		doc.Find(tag).Remove()
	}

	region := n.locateContent(doc)
	for _, sel := range n.policy.SecondaryWidgets {
		region.Find(sel).Remove()
	}

	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:   "atx",
		CodeBlockStyle: "fenced",
	})
	return conv.Convert(region), nil
}

func (n *Normalizer) locateContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range n.policy.ContentLocators {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
