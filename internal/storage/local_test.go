package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "uploads")
	p, err := NewLocalProvider(root)
	require.NoError(t, err)

	require.NoError(t, p.Put(ctx, "acta.txt", strings.NewReader("hola"), "text/plain"))

	obj, err := p.Get(ctx, "acta.txt")
	require.NoError(t, err)
	defer obj.Body.Close()
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "hola", string(data))
	assert.Equal(t, int64(4), obj.ContentLength)
	assert.Contains(t, obj.ContentType, "text/plain")

	require.NoError(t, p.Delete(ctx, "acta.txt"))
	_, err = os.Stat(filepath.Join(root, "acta.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, p.Delete(ctx, "acta.txt"), ErrNotFound)
	_, err = p.Get(ctx, "acta.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalProviderRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	p, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../secret", "a/b.txt", "/etc/passwd"} {
		_, err := p.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.ErrorIs(t, p.Put(ctx, key, strings.NewReader("x"), ""), ErrInvalidKey, key)
	}
}

func TestLocalProviderLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	p, err := NewLocalProvider(root)
	require.NoError(t, err)

	require.NoError(t, p.Put(ctx, "a.bin", strings.NewReader("123"), ""))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
}
