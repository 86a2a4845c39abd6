package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khyonie/Wisteria/internal/adapters/fs"
)

func TestHasher_HashFiles_Deterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "src", "A.java")
	b := filepath.Join(root, "src", "B.java")
	writeFile(t, a, "class A {}")
	writeFile(t, b, "class B {}")

	h := fs.NewHasher()

	first, err := h.HashFiles(root, []string{a, b}, "main")
	require.NoError(t, err)
	assert.Len(t, first, 16)

	// Input order does not matter.
	second, err := h.HashFiles(root, []string{b, a}, "main")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHasher_HashFiles_RootIndependent(t *testing.T) {
	t.Parallel()

	h := fs.NewHasher()

	// Identical trees under different roots digest identically, so a
	// project can move on disk without invalidating its build state.
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "src", "A.java"), "class A {}")
	writeFile(t, filepath.Join(rootB, "src", "A.java"), "class A {}")

	first, err := h.HashFiles(rootA, []string{filepath.Join(rootA, "src", "A.java")})
	require.NoError(t, err)
	second, err := h.HashFiles(rootB, []string{filepath.Join(rootB, "src", "A.java")})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHasher_HashFiles_ContentMoves(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.java")
	writeFile(t, a, "class A {}")

	h := fs.NewHasher()

	before, err := h.HashFiles(root, []string{a})
	require.NoError(t, err)

	writeFile(t, a, "class A { int x; }")
	after, err := h.HashFiles(root, []string{a})
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestHasher_HashFiles_PathMoves(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.java")
	b := filepath.Join(root, "B.java")
	writeFile(t, a, "class X {}")
	writeFile(t, b, "class X {}")

	h := fs.NewHasher()

	first, err := h.HashFiles(root, []string{a})
	require.NoError(t, err)
	second, err := h.HashFiles(root, []string{b})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHasher_HashFiles_ExtrasMove(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.java")
	writeFile(t, a, "class A {}")

	h := fs.NewHasher()

	first, err := h.HashFiles(root, []string{a}, "main", "17")
	require.NoError(t, err)
	second, err := h.HashFiles(root, []string{a}, "main", "21")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHasher_HashFiles_MissingFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := fs.NewHasher().HashFiles(root, []string{filepath.Join(root, "ghost.java")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open file")
}

func TestHasher_HashFiles_EmptyInputs(t *testing.T) {
	t.Parallel()

	digest, err := fs.NewHasher().HashFiles(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Len(t, digest, 16)
}
