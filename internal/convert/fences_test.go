package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertCodeTabs(t *testing.T) {
	in := "<CodeTabs>\n\n```ts\nconst a = 1;\n```\n\n```python\na = 1\n```\n\n</CodeTabs>\n"
	out := ConvertCodeTabs(in)

	assert.Contains(t, out, "<CodeGroup>")
	assert.Contains(t, out, "</CodeGroup>")
	assert.NotContains(t, out, "CodeTabs")
	assert.Contains(t, out, "```ts TypeScript\n")
	assert.Contains(t, out, "```python Python\n")
}

// TestFenceScopeCorrectness: an identical fence outside the container must
// stay untouched.
func TestFenceScopeCorrectness(t *testing.T) {
	in := "```go\npackage main\n```\n\n<CodeGroup>\n\n```go\npackage main\n```\n\n</CodeGroup>\n\n```go\npackage other\n```\n"
	out := AnnotateFences(in)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "```go", lines[0], "fence before the group is untouched")
	assert.Contains(t, out, "```go Go\n")
	assert.Equal(t, "```go", lines[len(lines)-4], "fence after the group is untouched")
}

func TestFenceInsideFenceNotRetitled(t *testing.T) {
	// A line that looks like a fence opener inside an open fence is content.
	in := "<CodeGroup>\n\n```shell-session\n$ cat example\n```ts\n```\n\n</CodeGroup>\n"
	out := AnnotateFences(in)

	assert.Contains(t, out, "```shell-session Shell\n")
	// The embedded ```ts line must not gain a title.
	assert.Contains(t, out, "$ cat example\n```ts\n")
}

func TestUnknownLanguageLeftUntitled(t *testing.T) {
	in := "<CodeGroup>\n\n```ruby\nputs 1\n```\n\n</CodeGroup>\n"
	out := AnnotateFences(in)
	assert.Contains(t, out, "```ruby\n")
	assert.NotContains(t, out, "```ruby ")
}

func TestFenceWithExistingTitleUntouched(t *testing.T) {
	// Fence opener with anything beyond the bare language id does not match.
	in := "<CodeGroup>\n\n```ts Custom Title\ncode\n```\n\n</CodeGroup>\n"
	out := AnnotateFences(in)
	assert.Contains(t, out, "```ts Custom Title\n")
}

func TestScopeStateResetsBetweenDocuments(t *testing.T) {
	// A document ending inside an unclosed group must not bleed into the next.
	first := AnnotateFences("<CodeGroup>\n\n```ts\ncode\n```\n")
	assert.Contains(t, first, "```ts TypeScript")

	second := AnnotateFences("```ts\ncode\n```\n")
	assert.NotContains(t, second, "TypeScript")
}

func TestConvertTabAttrs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading and group",
			in:   `<Tab heading="TypeScript" group="typescript">`,
			want: `<Tab title="TypeScript">`,
		},
		{
			name: "heading only",
			in:   `<Tab heading="Python">`,
			want: `<Tab title="Python">`,
		},
		{
			name: "already converted untouched",
			in:   `<Tab title="Go">`,
			want: `<Tab title="Go">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertTabAttrs(tt.in))
		})
	}
}
