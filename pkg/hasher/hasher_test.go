package hasher_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sanidhya49/binsavvy-cli/pkg/hasher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.jpg")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	sum, err := hasher.ChecksumFile(path)
	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestChecksumFile_Missing(t *testing.T) {
	_, err := hasher.ChecksumFile(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

func TestChecksumReader(t *testing.T) {
	sum, err := hasher.ChecksumReader(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)

	empty, err := hasher.ChecksumReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", empty)
}
