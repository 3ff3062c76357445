package docs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://docs.aws.amazon.com/x.html"

func TestPaginateBoundary(t *testing.T) {
	page := Paginate(pageURL, "hello", 5, 10)

	assert.Zero(t, page.Length)
	assert.False(t, page.HasMore)
	assert.Equal(t, "AWS Documentation from "+pageURL+":\n\n<e>No more content available.</e>", page.String())
}

func TestPaginateWindows(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, max int
		want       string
		hasMore    bool
	}{
		{"whole content fits", "hello", 0, 10, "hello", false},
		{"exact fit", "hello", 0, 5, "hello", false},
		{"first window", "hello world", 0, 5, "hello", true},
		{"middle window", "hello world", 5, 3, " wo", true},
		{"tail window", "hello world", 8, 10, "rld", false},
		{"negative start clamps", "hello", -3, 2, "he", true},
		{"multibyte runes", "héllo wörld", 1, 4, "éllo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(pageURL, tt.content, tt.start, tt.max)
			assert.Equal(t, tt.want, page.Content)
			assert.Equal(t, tt.hasMore, page.HasMore)
			assert.LessOrEqual(t, page.StartIndex+page.Length, page.OriginalLength)
		})
	}
}

func TestPageString(t *testing.T) {
	page := Paginate(pageURL, "hello world", 0, 5)
	assert.Equal(t,
		"AWS Documentation from "+pageURL+":\n\nhello\n\n<e>Content truncated. Call the read_documentation tool with start_index=5 to get more content.</e>",
		page.String())

	last := Paginate(pageURL, "hello world", 5, 100)
	assert.Equal(t, "AWS Documentation from "+pageURL+":\n\n world", last.String())
	assert.NotContains(t, last.String(), "Content truncated")
}

func TestPaginateTerminatesAfterCeilCalls(t *testing.T) {
	for _, size := range []int{1, 7, 50, 51, 999} {
		for _, maxLength := range []int{1, 3, 10, 50} {
			t.Run(fmt.Sprintf("size=%d/max=%d", size, maxLength), func(t *testing.T) {
				content := strings.Repeat("ab", size)[:size]
				want := (size + maxLength - 1) / maxLength

				var calls int
				var rebuilt strings.Builder
				start := 0
				for {
					page := Paginate(pageURL, content, start, maxLength)
					if page.Length == 0 {
						require.Contains(t, page.String(), "No more content available.")
						break
					}
					require.LessOrEqual(t, page.Length, maxLength)
					rebuilt.WriteString(page.Content)
					calls++
					require.LessOrEqual(t, calls, want)
					start = page.NextIndex()
				}

				assert.Equal(t, want, calls)
				assert.Equal(t, content, rebuilt.String())
			})
		}
	}
}
