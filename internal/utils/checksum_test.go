package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo.rpm")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	sum, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestFileSHA256MissingFile(t *testing.T) {
	_, err := FileSHA256(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
