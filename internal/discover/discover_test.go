package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTree creates a directory layout for discovery tests and returns its
// root. Every file contains a short ASCII line.
//
//	root/
//	  README.md
//	  notes.txt
//	  docs/
//	    b.md
//	    a.MD
//	    guide/
//	      c.md
//	  node_modules/
//	    pkg.md
func setupTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for _, rel := range []string{
		"README.md",
		"notes.txt",
		"docs/b.md",
		"docs/a.MD",
		"docs/guide/c.md",
		"node_modules/pkg.md",
	} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("hello\n"), 0o644))
	}
	return root
}

func mdOptions() Options {
	return Options{Extensions: []string{".md"}}
}

// TestDiscover_Directory walks a directory recursively and returns matching
// files sorted, with case-insensitive extension matching.
func TestDiscover_Directory(t *testing.T) {
	root := setupTree(t)

	res := Discover([]string{root}, mdOptions())

	want := []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "a.MD"),
		filepath.Join(root, "docs", "b.md"),
		filepath.Join(root, "docs", "guide", "c.md"),
		filepath.Join(root, "node_modules", "pkg.md"),
	}
	assert.Equal(t, want, res.Files)
	assert.Empty(t, res.Skipped)
}

// TestDiscover_Exclude prunes directories by name pattern, but never the
// root argument itself.
func TestDiscover_Exclude(t *testing.T) {
	root := setupTree(t)
	opts := Options{Extensions: []string{".md"}, Exclude: []string{"node_*", "guide"}}

	res := Discover([]string{root}, opts)
	assert.Equal(t, []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "a.MD"),
		filepath.Join(root, "docs", "b.md"),
	}, res.Files)

	res = Discover([]string{filepath.Join(root, "node_modules")}, opts)
	assert.Equal(t, []string{filepath.Join(root, "node_modules", "pkg.md")}, res.Files)
}

// TestDiscover_ExplicitFiles covers explicit file arguments, including one
// with a non-matching extension.
func TestDiscover_ExplicitFiles(t *testing.T) {
	root := setupTree(t)
	readme := filepath.Join(root, "README.md")
	notes := filepath.Join(root, "notes.txt")

	res := Discover([]string{notes, readme}, mdOptions())
	assert.Equal(t, []string{readme}, res.Files)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, notes, res.Skipped[0].Path)
	assert.Equal(t, SkipExtension, res.Skipped[0].Reason)
}

// TestDiscover_Extensions checks that the extension list is honoured.
func TestDiscover_Extensions(t *testing.T) {
	root := setupTree(t)

	res := Discover([]string{root}, Options{Extensions: []string{".txt"}})
	assert.Equal(t, []string{filepath.Join(root, "notes.txt")}, res.Files)
}

// TestDiscover_NotFound reports a missing path and keeps going.
func TestDiscover_NotFound(t *testing.T) {
	root := setupTree(t)
	missing := filepath.Join(root, "missing.md")
	readme := filepath.Join(root, "README.md")

	res := Discover([]string{missing, readme}, mdOptions())
	assert.Equal(t, []string{readme}, res.Files)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, missing, res.Skipped[0].Path)
	assert.Equal(t, SkipNotFound, res.Skipped[0].Reason)
	assert.Error(t, res.Skipped[0].Err)
}

// TestDiscover_Deduplicates queues a file once even when it is named both
// directly and through its directory.
func TestDiscover_Deduplicates(t *testing.T) {
	root := setupTree(t)
	docs := filepath.Join(root, "docs")
	b := filepath.Join(docs, "b.md")

	res := Discover([]string{b, docs, docs + string(filepath.Separator)}, mdOptions())
	assert.Equal(t, []string{
		b,
		filepath.Join(docs, "a.MD"),
		filepath.Join(docs, "guide", "c.md"),
	}, res.Files)
}

// TestDiscover_DeduplicatesAliases queues a file once when it is reached by
// a relative path, an absolute path and a symlink argument.
func TestDiscover_DeduplicatesAliases(t *testing.T) {
	root := setupTree(t)
	readme := filepath.Join(root, "README.md")
	link := filepath.Join(t.TempDir(), "alias.md")
	if err := os.Symlink(readme, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	t.Chdir(root)

	res := Discover([]string{"README.md", readme, link, "./docs/../README.md"}, mdOptions())
	assert.Equal(t, []string{"README.md"}, res.Files)
	assert.Empty(t, res.Skipped)
}

// TestDiscover_SkipsSymlinksInWalk verifies that walked symlinks are not
// queued, so a repair never replaces a link with a regular file.
func TestDiscover_SkipsSymlinksInWalk(t *testing.T) {
	root := setupTree(t)
	link := filepath.Join(root, "docs", "link.md")
	if err := os.Symlink(filepath.Join(root, "README.md"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	res := Discover([]string{filepath.Join(root, "docs")}, mdOptions())
	assert.NotContains(t, res.Files, link)
}

func TestDiscover_Empty(t *testing.T) {
	res := Discover([]string{t.TempDir()}, mdOptions())
	assert.Empty(t, res.Files)
	assert.Empty(t, res.Skipped)
}

func TestHasExtension(t *testing.T) {
	exts := []string{".md", ".markdown"}
	assert.True(t, hasExtension("a.md", exts))
	assert.True(t, hasExtension("dir/A.MARKDOWN", exts))
	assert.False(t, hasExtension("a.mdx", exts))
	assert.False(t, hasExtension("md", exts))
	assert.False(t, hasExtension(".md/file", exts))
}
