package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-constructs/docmigrate/internal/report"
	"github.com/open-constructs/docmigrate/internal/sentinel"
)

// renameStandard is a test helper running the full protect → rewrite →
// restore chain the way the pipeline does for a standard document.
func renameStandard(t *testing.T, content string) string {
	t.Helper()
	rep := report.New("rename")
	out, _, err := ProcessContent(content, "docs/test.mdx", ClassStandard, rep)
	require.NoError(t, err)
	return out
}

func TestImportRenames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "go module path",
			in:   `import "github.com/hashicorp/terraform-cdk-go/cdktf"`,
			want: `import "github.com/open-constructs/cdk-terrain-go/cdktn"`,
		},
		{
			name: "java package",
			in:   "import com.hashicorp.cdktf.App;",
			want: "import io.cdktn.cdktn.App;",
		},
		{
			name: "maven coordinate",
			in:   "com.hashicorp:cdktf:0.21.0",
			want: "io.cdktn:cdktn:0.21.0",
		},
		{
			name: "csharp namespace",
			in:   "using HashiCorp.Cdktf;",
			want: "using Io.Cdktn;",
		},
		{
			name: "python provider import",
			in:   "from cdktf_cdktf_provider_aws.instance import Instance",
			want: "from cdktn_provider_aws.instance import Instance",
		},
		{
			name: "python provider pip package",
			in:   "pip install cdktf-cdktf-provider-aws",
			want: "pip install cdktn-provider-aws",
		},
		{
			name: "python core import",
			in:   "from cdktf import App, TerraformStack",
			want: "from cdktn import App, TerraformStack",
		},
		{
			name: "typescript import",
			in:   `import { App } from "cdktf";`,
			want: `import { App } from "cdktn";`,
		},
		{
			name: "javascript require",
			in:   `const cdktf = require("cdktf");`,
			want: `const cdktn = require("cdktn");`,
		},
		{
			name: "scoped npm provider",
			in:   "npm install @cdktf/provider-aws",
			want: "npm install @cdktn/provider-aws",
		},
		{
			name: "scoped npm generic",
			in:   "@cdktf/hcl2json",
			want: "@cdktn/hcl2json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renameStandard(t, tt.in))
		})
	}
}

func TestCLIAndNarrativeRenames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cli package", "npm install -g cdktf-cli", "npm install -g cdktn-cli"},
		{"inline code command", "Run `cdktf deploy` to apply.", "Run `cdktn deploy` to apply."},
		{"shell prompt", "$ cdktf synth", "$ cdktn synth"},
		{"line leading command", "cdktf plan\ncdktf deploy", "cdktn plan\ncdktn deploy"},
		{"full brand with acronym", "CDK for Terraform (CDKTF) lets you", "CDK Terrain (CDKTN) lets you"},
		{"full brand", "CDK for Terraform supports Go.", "CDK Terrain supports Go."},
		{"bare acronym", "CDKTF generates JSON.", "CDKTN generates JSON."},
		{"package qualifier", "app := cdktf.NewApp(nil)", "app := cdktn.NewApp(nil)"},
		{"quoted package", `"dependencies": { "cdktf": "^0.21" }`, `"dependencies": { "cdktn": "^0.21" }`},
		{"backticked word", "the `cdktf` package", "the `cdktn` package"},
		{"destructured projen", `const { cdktf } = require("projen");`, `const { cdktn } = require("projen");`},
		{"projen class", "new ConstructLibraryCdktf({", "new ConstructLibraryCdktn({"},
		{"projen config key", "cdktfVersion: '0.21.0',", "cdktnVersion: '0.21.0',"},
		{"bare word narrative", "use cdktf to define stacks", "use cdktn to define stacks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renameStandard(t, tt.in))
		})
	}
}

// TestOrderingSensitivity verifies an earlier, more specific rule and a later
// catch-all both land correctly in the same document without cross-talk.
func TestOrderingSensitivity(t *testing.T) {
	in := "import com.hashicorp.cdktf.App; // CDKTF ships Java bindings\n" +
		"Use cdktf.App from the cdktf package.\n"
	want := "import io.cdktn.cdktn.App; // CDKTN ships Java bindings\n" +
		"Use cdktn.App from the cdktn package.\n"
	assert.Equal(t, want, renameStandard(t, in))
}

// TestProtectionInvariant verifies every protected form survives the rename
// pass byte-for-byte while surrounding text is rewritten.
func TestProtectionInvariant(t *testing.T) {
	protected := []string{
		"cdktf.tf.json",
		"cdktf.json",
		"cdktf.out",
		"cdktf.log",
		"CDKTF_LOG_LEVEL",
		"GITHUB_API_TOKEN_CDKTF",
		"~/.cdktf",
		"__cdktf_completion",
		"--cdktf-version",
		"npm_cdktf_cli",
		"npm_cdktf",
		"pypi_cdktf",
		"mvn_cdktf",
		"nuget_cdktf",
		"cdktf_version",
		"_cdktf_yargs_completions",
		"github.com/cdktf/",
		"cdktf-tf-module-stack",
		"projen-cdktf-hybrid-construct",
	}

	for _, form := range protected {
		t.Run(form, func(t *testing.T) {
			in := "The cdktf token surrounds " + form + " in prose."
			out := renameStandard(t, in)
			assert.Contains(t, out, form, "protected form must survive unchanged")
			assert.Contains(t, out, "The cdktn token", "surrounding prose must still be renamed")
		})
	}
}

// TestNoSentinelLeaks runs a content mix dense with protected and renameable
// forms and asserts nothing sentinel-shaped survives.
func TestNoSentinelLeaks(t *testing.T) {
	in := "Set CDKTF_LOG_LEVEL=debug, edit cdktf.json, then run `cdktf deploy`.\n" +
		"Artifacts land in cdktf.out; see cdktf.tf.json and cdktf.log.\n" +
		"CDKTF reads ~/.cdktf and __cdktf_state internally.\n"
	out := renameStandard(t, in)
	assert.Empty(t, sentinel.Leftover(out))
	assert.Contains(t, out, "CDKTF_LOG_LEVEL=debug")
	assert.Contains(t, out, "`cdktn deploy`")
	assert.Contains(t, out, "CDKTN reads ~/.cdktf")
}

// TestIdempotence: renaming already-renamed output changes nothing.
func TestIdempotence(t *testing.T) {
	in := "CDK for Terraform (CDKTF) apps run `cdktf synth` against cdktf.json.\n" +
		"import { App } from \"cdktf\";\n"
	first := renameStandard(t, in)
	second := renameStandard(t, first)
	assert.Equal(t, first, second)
}
