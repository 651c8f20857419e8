package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpus = `We hold these truths to be self-evident, that all men are created
equal, that they are endowed by their Creator with certain unalienable Rights,
that among these are Life, Liberty and the pursuit of Happiness. That to secure
these rights, Governments are instituted among Men, deriving their just powers
from the consent of the governed.`

// run executes the command line args against a fresh App and returns what
// it wrote to standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"plainsight"}, args...))
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestKeyLifecycle(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "keys")
	corpus := writeFile(t, dir, "corpus.txt", testCorpus)

	out, err := run(t, "", "--store", store, "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(No keys found)")

	out, err = run(t, "", "--store", store, "key", "add", "--order", "3", "decl", corpus)
	require.NoError(t, err)
	assert.Contains(t, out, `Added key "decl"`)

	_, err = run(t, "", "--store", store, "key", "add", "decl", corpus)
	assert.Error(t, err, "duplicate names are rejected")

	out, err = run(t, "", "--store", store, "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "decl")
	assert.Contains(t, out, "Storage used:")

	out, err = run(t, "", "--store", store, "key", "show", "decl")
	require.NoError(t, err)
	assert.Contains(t, out, "3-grams")

	out, err = run(t, "", "--store", store, "key", "show", "--dump", "decl")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Table{\n\tN() = 3\n"), out)

	out, err = run(t, "", "--store", store, "key", "delete", "decl")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted key "decl"`)

	_, err = run(t, "", "--store", store, "key", "delete", "decl")
	assert.Error(t, err)
}

func TestHideUnhide_StoredKey(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "keys")
	corpus := writeFile(t, dir, "corpus.txt", testCorpus)

	_, err := run(t, "", "--store", store, "key", "add", "decl", corpus)
	require.NoError(t, err)

	const msg = "meet me at noon"
	cover, err := run(t, "", "--store", store, "hide", "--key", "decl", msg)
	require.NoError(t, err)
	assert.NotContains(t, cover, msg)

	out, err := run(t, cover, "--store", store, "unhide", "--key", "decl")
	require.NoError(t, err)
	assert.Equal(t, msg+"\n", out)
}

func TestHideUnhide_Corpus(t *testing.T) {
	dir := t.TempDir()
	corpus := writeFile(t, dir, "corpus.txt", testCorpus)
	store := filepath.Join(dir, "unused")

	cover, err := run(t, "a secret\n", "--store", store, "hide", "--corpus", corpus, "--order", "2", "--seed", "t")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cover, "t"), cover)

	out, err := run(t, cover, "--store", store, "unhide", "--corpus", corpus, "--order", "2")
	require.NoError(t, err)
	assert.Equal(t, "a secret\n", out)
}

func TestHide_Clean(t *testing.T) {
	dir := t.TempDir()
	corpus := writeFile(t, dir, "corpus.txt", testCorpus)
	store := filepath.Join(dir, "unused")

	cover, err := run(t, "  <b>it's\t\tdone</b>  ", "--store", store, "hide", "--clean", "--corpus", corpus)
	require.NoError(t, err)

	out, err := run(t, cover, "--store", store, "unhide", "--corpus", corpus)
	require.NoError(t, err)
	assert.Equal(t, "bits done/b\n", out)
}

func TestHide_Errors(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "keys")
	corpus := writeFile(t, dir, "corpus.txt", testCorpus)

	_, err := run(t, "", "--store", store, "hide", "hello")
	assert.Error(t, err, "a model is required")

	_, err = run(t, "", "--store", store, "hide", "--key", "missing", "hello")
	assert.Error(t, err)

	_, err = run(t, "", "--store", store, "hide", "--corpus", corpus, "--seed", "toolong", "hello")
	assert.Error(t, err)

	out, err := run(t, "", "--store", store, "hide", "--passthrough", "--corpus", corpus, "--seed", "toolong", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, err = run(t, "", "--store", store, "hide", "--method", "rot13", "--corpus", corpus, "hello")
	assert.Error(t, err)
}

func TestRunKeyMethod(t *testing.T) {
	dir := t.TempDir()
	keyText := writeFile(t, dir, "key.txt", testCorpus)
	store := filepath.Join(dir, "unused")

	cipher, err := run(t, "", "--store", store, "hide", "--method", "runkey", "--corpus", keyText, "attack", "at", "dawn")
	require.NoError(t, err)
	assert.NotEqual(t, "attack at dawn\n", cipher)

	out, err := run(t, cipher, "--store", store, "unhide", "--method", "runkey", "--corpus", keyText)
	require.NoError(t, err)
	assert.Equal(t, "attack at dawn\n", out)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plainsight.toml", "[codec]\norder = 2\n\n[log]\nlevel = \"warn\"\n")

	out, err := run(t, "", "--config", path, "--store", filepath.Join(dir, "keys"), "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Order:")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, filepath.Join(dir, "keys"))

	_, err = run(t, "", "--log-level", "shouty", "config")
	assert.Error(t, err)
}
