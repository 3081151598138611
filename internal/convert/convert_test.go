package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-constructs/docmigrate/internal/report"
)

const sampleDoc = `---
page_title: Providers - CDK for Terraform
description: Providers in CDKTF applications.
---

# Providers

<!-- #NEXT_CODE_BLOCK_SOURCE:examples/providers -->

Providers let you interact with APIs. See [constructs](/terraform/cdktf/concepts/constructs).

<CodeTabs>

` + "```ts" + `
new Provider(this, "aws");
` + "```" + `

` + "```python" + `
Provider(self, "aws")
` + "```" + `

</CodeTabs>

<Tab heading="TypeScript" group="typescript">

~> **Warning:** Do not commit state files.

> **Hands-on:** Try the tutorial

![diagram](/img/provider-flow.png)
`

func TestPipelineConvert(t *testing.T) {
	p := &Pipeline{Titles: map[string]string{"concepts/providers": "Providers"}}
	rep := report.New("convert")

	out := p.Convert(sampleDoc, "concepts/providers.mdx", "src/concepts/providers.mdx", rep)

	t.Run("frontmatter", func(t *testing.T) {
		assert.Contains(t, out, "title: Providers - CDK for Terraform\nsidebarTitle: Providers\n")
		assert.NotContains(t, out, "page_title:")
	})

	t.Run("duplicate h1 removed", func(t *testing.T) {
		assert.NotContains(t, out, "# Providers")
	})

	t.Run("source comments stripped", func(t *testing.T) {
		assert.NotContains(t, out, "NEXT_CODE_BLOCK_SOURCE")
	})

	t.Run("code tabs converted and fences titled", func(t *testing.T) {
		assert.Contains(t, out, "<CodeGroup>")
		assert.Contains(t, out, "```ts TypeScript\n")
		assert.Contains(t, out, "```python Python\n")
	})

	t.Run("tab attrs rewritten", func(t *testing.T) {
		assert.Contains(t, out, `<Tab title="TypeScript">`)
	})

	t.Run("callouts normalized", func(t *testing.T) {
		assert.Contains(t, out, "<Warning>Do not commit state files.</Warning>")
		assert.Contains(t, out, "<Tip>Try the tutorial</Tip>")
	})

	t.Run("image path rewritten", func(t *testing.T) {
		assert.Contains(t, out, "(/images/provider-flow.png)")
	})

	t.Run("internal links inventoried, not rewritten", func(t *testing.T) {
		assert.Contains(t, out, "(/terraform/cdktf/concepts/constructs)")
		require.NotEmpty(t, rep.Links)
		assert.Equal(t, "/terraform/cdktf/concepts/constructs", rep.Links[0].Destination)
	})
}

func TestPipelineFlagsGeneratedFiles(t *testing.T) {
	p := &Pipeline{}
	rep := report.New("convert")
	in := "<!-- This file is generated by the provider generator. -->\ncontent\n"

	out := p.Convert(in, "x.mdx", "src/x.mdx", rep)

	assert.Contains(t, out, "This file is generated", "marker is flagged, not removed")
	assert.Equal(t, []string{"src/x.mdx"}, rep.Generated)
}

func TestRunnerConvertFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "concepts"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "concepts", "stacks.mdx"),
		[]byte("---\npage_title: Stacks\n---\n\n# Stacks\n\nBody.\n"), 0o600))

	r := &Runner{SrcBase: src, DstBase: dst, Pipeline: &Pipeline{}}
	rep := report.New("convert")
	require.NoError(t, r.ConvertFile(filepath.Join("concepts", "stacks.mdx"), filepath.Join("concepts", "stacks.mdx"), rep))

	got, err := os.ReadFile(filepath.Join(dst, "concepts", "stacks.mdx"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "title: Stacks")
	assert.NotContains(t, string(got), "# Stacks")
	assert.Equal(t, 1, rep.FilesProcessed)
	assert.Equal(t, 1, rep.FilesChanged)
}

func TestRunnerMissingSourceIsSkipped(t *testing.T) {
	r := &Runner{SrcBase: t.TempDir(), DstBase: t.TempDir(), Pipeline: &Pipeline{}}
	rep := report.New("convert")
	require.NoError(t, r.ConvertFile("gone.mdx", "gone.mdx", rep))
	assert.Len(t, rep.Missing, 1)
	assert.Equal(t, 0, rep.FilesProcessed)
}

func TestRunnerDryRunWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.mdx"),
		[]byte("---\npage_title: Home\n---\n"), 0o600))

	var diff strings.Builder
	r := &Runner{SrcBase: src, DstBase: dst, Pipeline: &Pipeline{}, DryRun: true, Out: &diff}
	rep := report.New("convert")
	require.NoError(t, r.ConvertFile("index.mdx", "index.mdx", rep))

	assert.NoFileExists(t, filepath.Join(dst, "index.mdx"))
	assert.Contains(t, diff.String(), "title: Home")
}

func TestDefaultMapping(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "concepts"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "api-reference"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "concepts", "hcl.mdx"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "concepts", "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "api-reference", "java.mdx"), []byte("x"), 0o600))

	pairs, err := DefaultMapping(src)
	require.NoError(t, err)

	assert.Equal(t, "index.mdx", pairs["index.mdx"])
	assert.Equal(t, filepath.Join("concepts", "hcl.mdx"), pairs[filepath.Join("concepts", "hcl.mdx")])
	assert.NotContains(t, pairs, filepath.Join("concepts", "notes.txt"))
	assert.NotContains(t, pairs, filepath.Join("api-reference", "java.mdx"), "api reference is excluded")
}

func TestLoadSidebarTitles(t *testing.T) {
	dir := t.TempDir()
	navPath := filepath.Join(dir, "nav.json")
	navJSON := `[
		{"title": "Overview", "path": "index"},
		{"title": "Concepts", "routes": [
			{"title": "Constructs", "path": "concepts/constructs"},
			{"title": "Nested", "routes": [{"title": "Stacks", "path": "concepts/stacks"}]}
		]}
	]`
	require.NoError(t, os.WriteFile(navPath, []byte(navJSON), 0o600))

	titles, err := LoadSidebarTitles(navPath)
	require.NoError(t, err)

	assert.Equal(t, "Overview", titles["index"])
	assert.Equal(t, "Constructs", titles["concepts/constructs"])
	assert.Equal(t, "Stacks", titles["concepts/stacks"])
	assert.NotContains(t, titles, "", "group entries without paths are skipped")
}

func TestLoadSidebarTitlesMissingFile(t *testing.T) {
	_, err := LoadSidebarTitles(filepath.Join(t.TempDir(), "nav.json"))
	require.Error(t, err)
}
