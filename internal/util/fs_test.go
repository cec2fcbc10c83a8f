package util

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHelpers(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, billyutil.WriteFile(fs, "app/build.gradle.kts", []byte("room\n"), 0644))

	assert.True(t, FileExists(fs, "app/build.gradle.kts"))
	assert.False(t, FileExists(fs, "app"))
	assert.False(t, FileExists(fs, "app/missing.kts"))

	assert.True(t, DirExists(fs, "app"))
	assert.False(t, DirExists(fs, "app/build.gradle.kts"))

	text, err := ReadText(fs, "app/build.gradle.kts")
	require.NoError(t, err)
	assert.Equal(t, "room\n", text)

	_, err = ReadText(fs, "nope")
	assert.Error(t, err)
}

func TestOpenRoot(t *testing.T) {
	dir := t.TempDir()
	fs := OpenRoot(dir)
	require.NoError(t, billyutil.WriteFile(fs, "a/B.kt", []byte("class B"), 0644))
	assert.True(t, FileExists(OpenRoot(dir), "a/B.kt"))
}
