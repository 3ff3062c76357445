package docs

import (
	"fmt"
	"strings"
)

const (
	noMoreContent   = "<e>No more content available.</e>"
	continuationFmt = "\n\n<e>Content truncated. Call the read_documentation tool with start_index=%d to get more content.</e>"
)

// Page is one window over a normalized document. Offsets and lengths count
// runes, so a window never splits a multi-byte character.
type Page struct {
	URL            string `json:"url"`
	Content        string `json:"content"`
	OriginalLength int    `json:"original_length"`
	StartIndex     int    `json:"start_index"`
	Length         int    `json:"length"`
	HasMore        bool   `json:"has_more"`
}

// NextIndex is the start_index that continues after this page.
func (p Page) NextIndex() int {
	return p.StartIndex + p.Length
}

// String renders the page the way it is returned to the caller.
func (p Page) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AWS Documentation from %s:\n\n", p.URL)
	if p.Length == 0 {
		b.WriteString(noMoreContent)
		return b.String()
	}
	b.WriteString(p.Content)
	if p.HasMore {
		fmt.Fprintf(&b, continuationFmt, p.NextIndex())
	}
	return b.String()
}

// Paginate cuts the window [startIndex, startIndex+maxLength) out of content.
// A start at or past the end yields an empty terminal page.
func Paginate(url, content string, startIndex, maxLength int) Page {
	runes := []rune(content)
	page := Page{
		URL:            url,
		OriginalLength: len(runes),
		StartIndex:     max(startIndex, 0),
	}

	if page.StartIndex >= page.OriginalLength || maxLength < 1 {
		return page
	}

	end := min(page.StartIndex+maxLength, page.OriginalLength)
	page.Content = string(runes[page.StartIndex:end])
	page.Length = end - page.StartIndex
	page.HasMore = end < page.OriginalLength
	return page
}
