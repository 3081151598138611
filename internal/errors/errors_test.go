package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateErrorFormatting(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(CategoryRename, "rewrite failed")
		assert.Equal(t, "rename (error): rewrite failed", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Wrap(cause, CategoryFileSystem, "write file")
		assert.Equal(t, "filesystem (error): write file: disk full", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestConfigErrorIsFatal(t *testing.T) {
	err := ConfigError("nav data missing")
	assert.Equal(t, SeverityFatal, err.Severity)
	assert.Equal(t, CategoryConfig, err.Category)
}

func TestProtectionLeakError(t *testing.T) {
	err := ProtectionLeakError("docs/index.mdx", []string{"<<PROT_0003>>"})
	require.NotNil(t, err.Context)
	assert.Equal(t, "docs/index.mdx", err.Context["file"])
	assert.Equal(t, CategoryProtection, err.Category)

	var me *MigrateError
	assert.True(t, errors.As(err, &me))
}

func TestWithContextAndSeverity(t *testing.T) {
	err := ValidationError("bad rule").WithContext("rule", 3).WithSeverity(SeverityWarning)
	assert.Equal(t, SeverityWarning, err.Severity)
	assert.Equal(t, 3, err.Context["rule"])
}
