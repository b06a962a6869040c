package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName_StripsUnsafeChars(t *testing.T) {
	assert.Equal(t, "cat.png", SanitizeName("cat.png"))
	assert.Equal(t, "my_piece-2.jpeg", SanitizeName("my_piece-2.jpeg"))
	assert.Equal(t, "catdog.png", SanitizeName("cat dog.png"))
	assert.Equal(t, "....etcpasswd", SanitizeName("../../etc/passwd"))
	assert.Equal(t, "C..WindowsSystem32", SanitizeName(`C:\..\Windows\System32`))
}

func TestSanitizeName_NeverEmpty(t *testing.T) {
	assert.Equal(t, "upload", SanitizeName(""))
	assert.Equal(t, "upload", SanitizeName("///"))
	assert.Equal(t, "upload", SanitizeName("日本語"))
}

func TestSanitizeName_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 300) + ".png"
	got := SanitizeName(long)
	assert.Len(t, got, 120)
	assert.True(t, strings.HasSuffix(got, ".png"))
}

func TestNewKey_UniquePerCall(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key := NewKey("cat.png")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
		assert.True(t, strings.HasSuffix(key, "-cat.png"))
		assert.Equal(t, key, SanitizeName(key), "key must be safe as-is")
	}
}

func TestDisk_PutAndPath(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	key := NewKey("cat.png")
	require.NoError(t, disk.Put(key, []byte("png-bytes"), "image/png"))

	data, err := os.ReadFile(disk.Path(key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, ok := disk.URLFor(key)
	assert.False(t, ok, "disk backend never has a remote URL")
}

func TestDisk_RejectsUnsafeKey(t *testing.T) {
	root := t.TempDir()
	disk, err := NewDisk(root)
	require.NoError(t, err)

	assert.Error(t, disk.Put("../escape.png", []byte("x"), "image/png"))
	assert.Error(t, disk.Put("", []byte("x"), "image/png"))

	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escape.png"))
	assert.True(t, os.IsNotExist(err), "nothing may be written outside the root")
}

func TestDisk_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDisk(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
