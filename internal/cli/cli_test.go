package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/adminui/internal/cli"
	"github.com/rshade/adminui/internal/config"
	"github.com/rshade/adminui/internal/pagination"
	"github.com/rshade/adminui/pkg/version"
)

// isolate points the adminui home (config, logs, cache) at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ADMINUI_HOME", home)
	t.Setenv("ADMINUI_SOURCE", "")
	t.Setenv("ADMINUI_PAGE_SIZE", "")
	return home
}

// writeMembers writes n members; every fifth one is an admin. Ids are numeric
// on the wire, as in the hosted document.
func writeMembers(t *testing.T, n int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("[")
	for i := 1; i <= n; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		role := "member"
		if i%5 == 0 {
			role = "admin"
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"User %02d","email":"user%02d@example.com","role":%q}`, i, i, i, role)
	}
	sb.WriteString("]")

	path := filepath.Join(t.TempDir(), "members.json")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdWithArgs("v0.0.0-test", append([]string{"adminui"}, args...),
		func(string) (string, bool) { return "", false })
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

type listJSON struct {
	Query   string `json:"query"`
	Members []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"members"`
	Pagination pagination.Meta `json:"pagination"`
}

func TestRootCmd_Help(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, flag := range []string{"--debug", "--config", "--source", "--cache-ttl", "--strict", "--timeout", "--plain"} {
		assert.Contains(t, out, flag)
	}
	for _, sub := range []string{"browse", "list", "cache", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_DefaultsToPlainBrowseWithoutTerminal(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--source", writeMembers(t, 12))
	require.NoError(t, err)

	assert.Contains(t, out, "ID  NAME")
	assert.Contains(t, out, "User 10")
	assert.NotContains(t, out, "User 11")
	assert.Contains(t, out, "Page 1 of 2 (12 members)")
}

func TestListCmd_JSONClampsPage(t *testing.T) {
	isolate(t)
	out, err := execute(t, "list", "--source", writeMembers(t, 25), "--page", "99", "--output", "json")
	require.NoError(t, err)

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Members, 5)
	assert.Equal(t, "21", got.Members[0].ID, "numeric ids are normalized to strings")
	assert.Equal(t, pagination.Meta{
		CurrentPage: 3,
		PageSize:    10,
		TotalPages:  3,
		TotalItems:  25,
		FirstItem:   21,
		LastItem:    25,
		HasPrevious: true,
		HasNext:     false,
	}, got.Pagination)
}

func TestListCmd_SearchSortYAML(t *testing.T) {
	isolate(t)
	out, err := execute(t, "list", "--source", writeMembers(t, 25),
		"--search", "ADMIN", "--sort", "id:desc", "--page-size", "2", "--output", "yaml")
	require.NoError(t, err)

	var got struct {
		Query   string `yaml:"query"`
		Members []struct {
			ID string `yaml:"id"`
		} `yaml:"members"`
		Pagination pagination.Meta `yaml:"pagination"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ADMIN", got.Query)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "25", got.Members[0].ID)
	assert.Equal(t, "20", got.Members[1].ID)
	assert.Equal(t, 5, got.Pagination.TotalItems)
	assert.Equal(t, 3, got.Pagination.TotalPages)
}

func TestListCmd_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "output", args: []string{"--output", "xml"}, wantErr: "unsupported output format"},
		{name: "sort field", args: []string{"--sort", "salary"}, wantErr: "invalid sort field"},
		{name: "sort order", args: []string{"--sort", "name:up"}, wantErr: "invalid sort expression"},
		{name: "page", args: []string{"--page", "0"}, wantErr: "page must be >= 1"},
		{name: "page size", args: []string{"--page-size", "5000"}, wantErr: "page-size must be between"},
		{name: "cache ttl", args: []string{"--cache-ttl", "-1"}, wantErr: "cache-ttl must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			args := append([]string{"list", "--source", writeMembers(t, 3)}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListCmd_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	t.Run("empty list by default", func(t *testing.T) {
		isolate(t)
		out, err := execute(t, "list", "--source", missing)
		require.NoError(t, err)
		assert.Contains(t, out, "No members. Page 1 of 1 (0 members)")
	})

	t.Run("strict fails with load exit code", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "list", "--source", missing, "--strict")
		require.Error(t, err)
		assert.ErrorIs(t, err, cli.ErrLoadFailed)

		var exitErr *cli.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, cli.ExitCodeLoadFailure, exitErr.Code)
	})
}

func TestListCmd_MultipleSources(t *testing.T) {
	isolate(t)
	out, err := execute(t, "list", "--source", writeMembers(t, 3), "--source", writeMembers(t, 2), "--output", "json")
	require.NoError(t, err)

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.Pagination.TotalItems, "sources are concatenated without dedup")
}

func TestListCmd_CachedDocumentSurvivesSourceRemoval(t *testing.T) {
	isolate(t)
	src := writeMembers(t, 4)

	_, err := execute(t, "list", "--source", src, "--cache-ttl", "300")
	require.NoError(t, err)
	require.NoError(t, os.Remove(src))

	out, err := execute(t, "list", "--source", src, "--cache-ttl", "300", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "User 04")

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")

	out, err = execute(t, "cache", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 cached document(s)")

	_, err = execute(t, "list", "--source", src, "--cache-ttl", "300", "--strict")
	require.Error(t, err)
}

func TestCacheCmd_PruneEmpty(t *testing.T) {
	isolate(t)
	out, err := execute(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired document(s)")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	home := isolate(t)
	src := writeMembers(t, 30)
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("sources:\n  - %s\npage_size: 7\n", src)), 0o600))

	out, err := execute(t, "list", "--output", "json")
	require.NoError(t, err)
	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Members, 7)
	assert.Equal(t, 5, got.Pagination.TotalPages)

	out, err = execute(t, "list", "--output", "json", "--page-size", "15")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Members, 15)
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "adminui v0.0.0-test")
	assert.Contains(t, out, "commit:")
}

func TestRequiredVersionGate(t *testing.T) {
	home := isolate(t)
	src := writeMembers(t, 3)
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte(fmt.Sprintf("sources:\n  - %s\nrequired_version: \">= 1.0.0\"\n", src)), 0o600))

	_, err := execute(t, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, version.ErrUnsatisfied)

	require.NoError(t, os.WriteFile(cfgPath,
		[]byte(fmt.Sprintf("sources:\n  - %s\nrequired_version: \"not a constraint\"\n", src)), 0o600))
	_, err = execute(t, "list")
	assert.ErrorIs(t, err, config.ErrInvalidRequired)
}

func TestTimeoutFlagOverridesInvalidFileValue(t *testing.T) {
	home := isolate(t)
	src := writeMembers(t, 3)
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("sources:\n  - %s\ntimeout: 0s\n", src)), 0o600))

	_, err := execute(t, "list")
	require.ErrorIs(t, err, config.ErrInvalidTimeout)

	out, err := execute(t, "list", "--timeout", "5s")
	require.NoError(t, err)
	assert.Contains(t, out, "User 03")
}

func TestCacheTTLZeroDisablesConfiguredCache(t *testing.T) {
	home := isolate(t)
	src := writeMembers(t, 3)
	cacheDir := filepath.Join(home, "cache")
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"sources:\n  - %s\ncache:\n  enabled: true\n  directory: %s\n  ttl_seconds: 300\n", src, cacheDir)), 0o600))

	_, err := execute(t, "list", "--cache-ttl", "0")
	require.NoError(t, err)
	entries, _ := os.ReadDir(cacheDir)
	assert.Empty(t, entries, "--cache-ttl 0 turns the configured cache off")

	_, err = execute(t, "list")
	require.NoError(t, err)
	entries, err = os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
