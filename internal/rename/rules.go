package rename

import "github.com/open-constructs/docmigrate/internal/rules"

// ProtectedPatterns lists every substring form the rename pass must leave
// byte-for-byte untouched. Order matters: more specific patterns first so a
// general pattern never claims part of a more specific match.
var ProtectedPatterns = []rules.ProtectionRule{
	// File name patterns (most specific first)
	rules.Protection(`cdktf\.tf\.json`, "synth output file"),
	rules.Protection(`cdktf\.json`, "config file"),
	rules.Protection(`cdktf\.out`, "output directory"),
	rules.Protection(`cdktf\.log`, "log file"),

	// Environment variables: CDKTF_ followed by uppercase letter
	rules.Protection(`CDKTF_[A-Z]\w*`, "env var"),
	rules.Protection(`GITHUB_API_TOKEN_CDKTF`, "env var"),

	// Paths and internals
	rules.Protection(`~/\.cdktf`, "home directory"),
	rules.Protection(`__cdktf_\w*`, "internal symbol"),

	// CLI flag
	rules.Protection(`--cdktf-version`, "CLI flag"),

	// Template variables in remote-template scaffolding. npm_cdktf_cli must
	// come first; the bare npm_cdktf uses a word boundary so it cannot bite
	// into npm_cdktf_cli-style compounds.
	rules.Protection(`npm_cdktf_cli`, "template var"),
	rules.Protection(`npm_cdktf\b`, "template var"),
	rules.Protection(`pypi_cdktf`, "template var"),
	rules.Protection(`mvn_cdktf`, "template var"),
	rules.Protection(`nuget_cdktf`, "template var"),
	rules.Protection(`cdktf_version`, "template var"),

	// Shell completion internal function names
	rules.Protection(`_cdktf_yargs_completions`, "shell completion function"),

	// GitHub org "cdktf" (separate from hashicorp/terraform-cdk)
	rules.Protection(`github\.com/cdktf/`, "cdktf GitHub org"),

	// Third-party package names we don't control
	rules.Protection(`cdktf-tf-module-stack`, "third-party package"),
	rules.Protection(`projen-cdktf-hybrid-construct`, "third-party package"),
}

// ContentRules is the ordered brand rename table for standard documents.
// Most specific first; the two trailing word-boundary rules are the
// catch-alls and rely on the protection layer having already sentinelized
// every form listed in ProtectedPatterns.
var ContentRules = []rules.RenameRule{
	// Language-specific imports/packages (most specific first)

	// Go module path
	rules.Literal("hashicorp/terraform-cdk-go/cdktf", "open-constructs/cdk-terrain-go/cdktn"),

	// Java package namespace and Maven coordinate
	rules.Literal("com.hashicorp.cdktf", "io.cdktn.cdktn"),
	rules.Literal("com.hashicorp:cdktf", "io.cdktn:cdktn"),

	// C# namespace
	rules.Literal("HashiCorp.Cdktf", "Io.Cdktn"),

	// Python provider imports (must come before the generic core import)
	rules.Literal("from cdktf_cdktf_provider_", "from cdktn_provider_"),
	rules.Literal("cdktf_cdktf_provider_", "cdktn_provider_"),
	rules.Literal("cdktf-cdktf-provider-", "cdktn-provider-"),

	// Python core import
	rules.Literal("from cdktf import", "from cdktn import"),

	// TypeScript/JavaScript imports
	rules.Literal(`from "cdktf"`, `from "cdktn"`),
	rules.Literal(`from 'cdktf'`, `from 'cdktn'`),
	rules.Literal(`require("cdktf")`, `require("cdktn")`),
	rules.Literal(`require('cdktf')`, `require('cdktn')`),

	// Scoped npm packages
	rules.Literal("@cdktf/provider-", "@cdktn/provider-"),
	rules.Literal("@cdktf/aws-cdk", "@cdktn/aws-cdk"),
	rules.Literal("@cdktf/", "@cdktn/"),

	// CLI and package names
	rules.Literal("cdktf-cli", "cdktn-cli"),
	rules.Literal("cdktf-construct", "cdktn-construct"),

	// Projen class and config key
	rules.Literal("ConstructLibraryCdktf", "ConstructLibraryCdktn"),
	rules.Literal("cdktfVersion", "cdktnVersion"),

	// Project name in narrative text; the acronym-introduction form first
	rules.Literal("CDK for Terraform (CDKTF)", "CDK Terrain (CDKTN)"),
	rules.Literal("CDK for Terraform", "CDK Terrain"),

	// Acronym as a standalone word. Safe only because CDKTF_* env vars are
	// already sentinelized at this point.
	rules.Regex(`\bCDKTF\b`, "CDKTN"),

	// Package qualifier (cdktf.NewApp → cdktn.NewApp). Safe because
	// cdktf.json/cdktf.out/cdktf.log are already sentinelized.
	rules.Regex(`\bcdktf\.`, "cdktn."),

	// Remaining bare references
	rules.Literal(`"cdktf"`, `"cdktn"`),
	rules.Literal(`'cdktf'`, `'cdktn'`),
	rules.Literal("`cdktf`", "`cdktn`"),

	// Projen destructuring: const { cdktf } = require("projen")
	rules.Literal("{ cdktf }", "{ cdktn }"),

	// CLI command at start of inline code or after a shell prompt
	rules.Literal("`cdktf ", "`cdktn "),
	rules.Literal("$ cdktf ", "$ cdktn "),

	// CLI command at the start of a code-block line
	rules.Regex(`(?m)^cdktf `, "cdktn "),

	// Narrative references like "the cdktf package"
	rules.Regex(`\bcdktf\b`, "cdktn"),
}
