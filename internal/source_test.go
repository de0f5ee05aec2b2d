package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourceCode(t *testing.T) {
	t.Parallel()
	testFile := filepath.Join(t.TempDir(), "test.sexpr")
	content := "(+ 1\n\t2)\n"
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0o644))

	sourceCode, err := ReadSourceCode(testFile)
	require.NoError(t, err)
	assert.Len(t, sourceCode.Lines, 3)
	assert.Equal(t, "(+ 1", sourceCode.Line(1))
	assert.Equal(t, "\t2)", sourceCode.Line(2))
	assert.Equal(t, "", sourceCode.Line(0))
	assert.Equal(t, "", sourceCode.Line(4))

	_, err = ReadSourceCode(filepath.Join(t.TempDir(), "missing.sexpr"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
