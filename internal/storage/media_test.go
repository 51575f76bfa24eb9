package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDerivesRetrievablePath(t *testing.T) {
	s := NewMediaStore(t.TempDir())

	rel, err := s.Save(strings.NewReader("fake-image-bytes"), "holiday.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, filepath.Join("posts")+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(rel, ".jpg"), "extension survives the rename")

	data, err := os.ReadFile(s.Path(rel))
	require.NoError(t, err)
	assert.Equal(t, "fake-image-bytes", string(data))
}

func TestSaveUniqueNames(t *testing.T) {
	s := NewMediaStore(t.TempDir())

	a, err := s.Save(strings.NewReader("one"), "same.png")
	require.NoError(t, err)
	b, err := s.Save(strings.NewReader("two"), "same.png")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "colliding upload names never overwrite")
}

func TestSaveWithoutExtension(t *testing.T) {
	s := NewMediaStore(t.TempDir())
	rel, err := s.Save(strings.NewReader("x"), "raw")
	require.NoError(t, err)
	_, err = os.Stat(s.Path(rel))
	require.NoError(t, err)
}
