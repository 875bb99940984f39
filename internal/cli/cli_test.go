package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code        int
	out, errOut string
}

// tada runs the command line against a json store in dir.
func tada(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	for _, env := range []string{"TADA_CONFIG", "TADA_BACKEND", "TADA_DATA_DIR", "TADA_DELETE_POLICY", "TADA_THEME", "TADA_LOG_LEVEL"} {
		t.Setenv(env, "")
	}
	base := []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--backend", "json",
		"--data-dir", filepath.Join(dir, "data"),
		"--theme", "mono",
	}
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), append(base, args...), strings.NewReader(stdin), &out, &errOut)
	return result{code: code, out: out.String(), errOut: errOut.String()}
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	res := tada(t, dir, "", args...)
	require.Equal(t, ExitOK, res.code, "tada %v: %s", args, res.errOut)
	return res.out
}

var idPattern = regexp.MustCompile(`#(\d+)`)

// addItem runs `tada add` and returns the new id.
func addItem(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out := mustRun(t, dir, append([]string{"add"}, args...)...)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func assertOrder(t *testing.T, out string, texts ...string) {
	t.Helper()
	last := -1
	for _, s := range texts {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "%q missing from\n%s", s, out)
		assert.Greater(t, i, last, "%q out of order in\n%s", s, out)
		last = i
	}
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()
	addItem(t, dir, "Buy", "milk")

	out := mustRun(t, dir, "ls")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "[ ] Buy milk")
	assert.Contains(t, out, "0%")
}

func TestAddCreatesGroups(t *testing.T) {
	dir := t.TempDir()
	assert.Contains(t, mustRun(t, dir, "add", "Groceries/"), "created group Groceries")
	assert.Contains(t, mustRun(t, dir, "add", "Groceries/"), "already exists")
	addItem(t, dir, "--group", "Work", "Write report")

	out := mustRun(t, dir, "group", "ls")
	assertOrder(t, out, "1. General", "2. Groceries", "3. Work [1]")
}

func TestAddEmptyIsUsageError(t *testing.T) {
	res := tada(t, t.TempDir(), "", "add", "   ")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "empty text")

	res = tada(t, t.TempDir(), "", "add")
	assert.Equal(t, ExitUsage, res.code)
}

func TestDoneTogglesAndRmRemoves(t *testing.T) {
	dir := t.TempDir()
	id := addItem(t, dir, "Call mom")

	assert.Contains(t, mustRun(t, dir, "done", id), "done Call mom")
	out := mustRun(t, dir, "ls")
	assert.Contains(t, out, "[x] Call mom")
	assert.Contains(t, out, "100%")

	assert.Contains(t, mustRun(t, dir, "done", "#"+id), "reopened Call mom")

	assert.Contains(t, mustRun(t, dir, "rm", id), "removed Call mom")
	assert.Contains(t, mustRun(t, dir, "ls"), "no items")
}

func TestBadIDsAreUsageErrors(t *testing.T) {
	dir := t.TempDir()
	res := tada(t, dir, "", "done", "abc")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "not an item id")

	res = tada(t, dir, "", "rm", "42")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "no item with id 42")
	assert.Contains(t, res.errOut, "tada ls")
}

func TestReorderWithinGroup(t *testing.T) {
	dir := t.TempDir()
	for _, s := range []string{"alpha", "bravo", "charlie"} {
		addItem(t, dir, s)
	}
	mustRun(t, dir, "mv", "General", "3", "1")
	assertOrder(t, mustRun(t, dir, "ls"), "charlie", "alpha", "bravo")

	res := tada(t, dir, "", "mv", "General", "1", "4")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "out of range")

	res = tada(t, dir, "", "mv", "Nope", "1", "2")
	assert.Equal(t, ExitUsage, res.code)
}

func TestMoveToGroup(t *testing.T) {
	dir := t.TempDir()
	id := addItem(t, dir, "Report")
	mustRun(t, dir, "group", "add", "Work")

	assert.Contains(t, mustRun(t, dir, "move", id, "Work"), "moved Report to Work")
	assert.Contains(t, mustRun(t, dir, "group", "ls"), "Work [1]")
	assert.Contains(t, mustRun(t, dir, "move", id, "Work"), "already in Work")
}

func TestGroupReorderAndCollapse(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "group", "add", "Work")
	addItem(t, dir, "--group", "Work", "secret")
	mustRun(t, dir, "group", "mv", "2", "1")
	assertOrder(t, mustRun(t, dir, "group", "ls"), "Work", "General")

	assert.Contains(t, mustRun(t, dir, "group", "collapse", "Work"), "collapsed Work")
	out := mustRun(t, dir, "ls")
	assert.Contains(t, out, "Work")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, mustRun(t, dir, "group", "collapse", "Work"), "expanded Work")
}

func TestGroupRmAsksFirst(t *testing.T) {
	dir := t.TempDir()
	addItem(t, dir, "--group", "Work", "Report")

	res := tada(t, dir, "n\n", "group", "rm", "Work")
	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.out, `Delete group "Work" and its 1 item(s)? [y/N]`)
	assert.Contains(t, res.out, "cancelled")
	assert.Contains(t, mustRun(t, dir, "group", "ls"), "Work")

	res = tada(t, dir, "y\n", "group", "rm", "Work")
	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.out, "deleted group Work")
	out := mustRun(t, dir, "ls")
	assert.NotContains(t, out, "Work")
	assert.NotContains(t, out, "Report")
}

func TestGroupRmReassign(t *testing.T) {
	dir := t.TempDir()
	addItem(t, dir, "--group", "Work", "Report")

	mustRun(t, dir, "group", "rm", "--yes", "--policy", "reassign", "Work")
	out := mustRun(t, dir, "group", "ls")
	assert.NotContains(t, out, "Work")
	assert.Contains(t, out, "General [1]")
}

func TestGroupRmRefusals(t *testing.T) {
	dir := t.TempDir()
	res := tada(t, dir, "", "group", "rm", "--yes", "General")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "cannot be deleted")

	res = tada(t, dir, "", "group", "rm", "--yes", "Nope")
	assert.Equal(t, ExitUsage, res.code)

	res = tada(t, dir, "", "group", "rm", "--yes", "--policy", "shred", "General")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "delete_policy")
}

func TestMoodLogListRemove(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "mood", "log", "happy", "Tired")
	assert.Contains(t, out, "Happy")
	assert.Contains(t, out, "Tired")

	out = mustRun(t, dir, "mood", "ls")
	assert.Contains(t, out, "#1")
	assertOrder(t, out, "Happy", "Tired")

	assert.Contains(t, mustRun(t, dir, "mood", "rm", "#1"), "deleted 2 emotion(s)")
	assert.Contains(t, mustRun(t, dir, "mood", "ls"), "no entries yet")

	res := tada(t, dir, "", "mood", "rm", "#1")
	assert.Equal(t, ExitUsage, res.code)
	res = tada(t, dir, "", "mood", "rm", "2020-01-01T00:00:00.000Z")
	assert.Equal(t, ExitUsage, res.code)
}

func TestMoodLogUnknownEmotion(t *testing.T) {
	dir := t.TempDir()
	res := tada(t, dir, "", "mood", "log", "happy", "hangry")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, `unknown emotion "hangry"`)
	assert.Contains(t, mustRun(t, dir, "mood", "ls"), "no entries yet")
}

func TestMoodEmotionsSkipsStorage(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "mood", "emotions")
	assertOrder(t, out, "GOOD", "Happy", "BAD", "Sad")
	_, err := os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(err))
}

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	addItem(t, dir, "--group", "Work", "Report")

	out := mustRun(t, dir, "backup", "--dir", backups)
	assert.Contains(t, out, "backup written to")
	files, err := os.ReadDir(backups)
	require.NoError(t, err)
	require.Len(t, files, 1)

	other := t.TempDir()
	out = mustRun(t, other, "restore", filepath.Join(backups, files[0].Name()))
	assert.Contains(t, out, "restored todos, groups, collapsedGroups")
	assert.Contains(t, mustRun(t, other, "ls"), "Report")
}

func TestRestoreRejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"unrelated": 1}`), 0o644))

	res := tada(t, dir, "", "restore", p)
	assert.Equal(t, ExitUsage, res.code)

	res = tada(t, dir, "", "restore", filepath.Join(dir, "nope.json"))
	assert.Equal(t, ExitRuntime, res.code)
}

func TestRestoreKeepsDataOnMistypedFile(t *testing.T) {
	dir := t.TempDir()
	addItem(t, dir, "--group", "Work", "Report")
	p := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"todos":{"not":"an array"},"groups":7}`), 0o644))

	res := tada(t, dir, "", "restore", p)
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "invalid value")

	out := mustRun(t, dir, "ls")
	assert.Contains(t, out, "Report")
	assert.Contains(t, out, "Work")
}

func TestBackupRejectsBadInterval(t *testing.T) {
	res := tada(t, t.TempDir(), "", "backup", "--dir", t.TempDir(), "--every", "soon")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "invalid interval")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"frobnicate"},
		{"done"},
		{"ls", "--nope"},
		{"move", "1"},
	} {
		res := tada(t, dir, "", args...)
		assert.Equal(t, ExitUsage, res.code, "%v", args)
		assert.NotEmpty(t, res.errOut, "%v", args)
	}
}

func TestStorageFailureIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--backend", "json",
		"--data-dir", filepath.Join(blocker, "data"),
		"ls",
	}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, ExitRuntime, code)
	assert.Contains(t, errOut.String(), "open json backend")
}

func TestMemoryBackend(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--backend", "memory",
		"add", "ephemeral",
	}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	assert.Contains(t, out.String(), "added #")
}

func TestBadLogLevelIsUsageError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "missing.yaml"), []byte("log_level: loud\n"), 0o644))

	res := tada(t, dir, "", "ls")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, `log level "loud"`)
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.yaml")

	assert.Contains(t, mustRun(t, dir, "config", "init"), "wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: json")
	assert.Contains(t, string(data), "theme: mono")
	assert.Contains(t, string(data), "data_dir: "+filepath.Join(dir, "data"))
	assert.NoDirExists(t, filepath.Join(dir, "data"), "config init must not open storage")

	res := tada(t, dir, "", "config", "init")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.errOut, "--force")

	mustRun(t, dir, "--backend", "memory", "config", "init", "--force")
	out := mustRun(t, dir, "config", "show")
	assert.Contains(t, out, "backend: json", "flags still win over the file")

	var outBuf, errBuf bytes.Buffer
	t.Setenv("TADA_BACKEND", "")
	code := Execute(context.Background(), []string{"--config", path, "config", "show"},
		strings.NewReader(""), &outBuf, &errBuf)
	require.Equal(t, ExitOK, code, errBuf.String())
	assert.Contains(t, outBuf.String(), "backend: memory")
}
