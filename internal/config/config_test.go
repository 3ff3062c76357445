package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDefaults(t *testing.T) {
	cfg, err := load(nil, noEnv, nil)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, `^https?://docs\.aws\.amazon\.com/`, cfg.Docs.URLPattern)
	assert.Equal(t, ".html", cfg.Docs.RequiredSuffix)
	assert.Equal(t, 30*time.Second, cfg.Docs.Timeout)
	assert.Equal(t, "https://proxy.search.docs.aws.amazon.com/search", cfg.Docs.SearchURL)
	assert.Equal(t, "en_us", cfg.Docs.Locale)
	assert.Contains(t, cfg.Docs.UserAgent, "ModelContextProtocol/1.0 (AWS Documentation Client)")
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Pager.Quit)
}

func TestPrecedence(t *testing.T) {
	root := t.TempDir()
	global := filepath.Join(root, "global")
	local := filepath.Join(root, "local")

	writeFile(t, global, "base.awsdocs.yaml", `
log:
  level: debug
docs:
  timeout: 5s
  locale: de_de
mcpServers:
  git:
    command: git-mcp
`)
	writeFile(t, local, "local.awsdocs.json", `{
  "docs": {"timeout": "10s"},
  "mcpServers": {"fs": {"command": "fs-mcp", "args": ["--root", "."]}}
}`)
	writeFile(t, local, "ignored.yaml", `log: {level: ERROR}`)

	env := map[string]string{"AWSDOCS_DOCS_LOCALE": "fr_fr"}
	level := "WARN"

	cfg, err := load([]string{global, local}, func(k string) string { return env[k] }, &RuntimeOverrides{LogLevel: &level})
	require.NoError(t, err)

	assert.Equal(t, "WARN", cfg.Log.Level, "flag beats file")
	assert.Equal(t, 10*time.Second, cfg.Docs.Timeout, "local beats global")
	assert.Equal(t, "fr_fr", cfg.Docs.Locale, "env beats files")
	assert.Equal(t, "docs.aws.amazon.com", cfg.Docs.Domain, "untouched default survives")

	require.Len(t, cfg.MCPServers, 2, "maps deep merge")
	assert.Equal(t, "git-mcp", cfg.MCPServers["git"].Command)
	assert.Equal(t, []string{"--root", "."}, cfg.MCPServers["fs"].Args)

	var out bytes.Buffer
	cfg.PrintConfig(&out, true, "")
	printed := out.String()
	assert.Contains(t, printed, "level: WARN # (command line flag)")
	assert.Contains(t, printed, "locale: fr_fr # (AWSDOCS_DOCS_LOCALE environment variable)")
	assert.Contains(t, printed, "timeout: 10s # ("+filepath.Join(local, "local.awsdocs.json")+")")
	assert.Contains(t, printed, "domain: docs.aws.amazon.com # (default)")
}

func TestListsAppendWithoutDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keys.awsdocs.yaml", `
pager:
  quit: [x, q]
`)

	cfg, err := load([]string{dir}, noEnv, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "ctrl+c", "x"}, cfg.Pager.Quit)
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{
			name:    "bad log level",
			file:    "log: {level: LOUD}",
			wantErr: "config validation error",
		},
		{
			name:    "bad url pattern",
			file:    "docs: {urlPattern: '(['}",
			wantErr: "not a valid regular expression",
		},
		{
			name:    "mcp server without command",
			file:    "mcpServers: {broken: {args: [a]}}",
			wantErr: "Command",
		},
		{
			name:    "type mismatch",
			file:    "docs: oops",
			wantErr: "type mismatch for key docs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "bad.awsdocs.yaml", tt.file)

			_, err := load([]string{dir}, noEnv, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrintConfigRedactsSecrets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "srv.awsdocs.yaml", `
mcpServers:
  search:
    command: search-mcp
    env:
      API_KEY: hunter2
`)

	cfg, err := load([]string{dir}, noEnv, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	cfg.PrintConfig(&out, false, "")
	assert.Contains(t, out.String(), "api_key: [REDACTED]")
	assert.NotContains(t, out.String(), "hunter2")
}

func TestPrintConfigPrefix(t *testing.T) {
	cfg, err := load(nil, noEnv, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	cfg.PrintConfig(&out, false, "docs.locale")
	assert.Equal(t, "docs:\n  locale: en_us\n", out.String())

	out.Reset()
	cfg.PrintConfig(&out, false, "SERVER")
	assert.Contains(t, out.String(), "server:\n  name: aws-documentation\n")
	assert.NotContains(t, out.String(), "docs:")
}

func TestKnownKeys(t *testing.T) {
	known := GetKnownKeys()

	assert.True(t, IsKnownKey(known, "docs.userAgent"))
	assert.True(t, IsKnownKey(known, "mcpServers.git.command"))
	assert.True(t, IsKnownKey(known, "mcpServers.git.env.TOKEN"))
	assert.False(t, IsKnownKey(known, "docs.nope"))
}

func TestEnvNames(t *testing.T) {
	assert.Contains(t, leafKeys(), "docs.userAgent")
	assert.NotContains(t, leafKeys(), "mcpServers")
	assert.Equal(t, "AWSDOCS_DOCS_USERAGENT", envName("docs.userAgent"))
}

func TestKeyMapAction(t *testing.T) {
	k := KeyMap{NextPage: []string{"n", "right"}, Quit: []string{"q"}}
	assert.Equal(t, KeyActionNextPage, k.Action("right"))
	assert.Equal(t, KeyActionQuit, k.Action("q"))
	assert.Equal(t, "", k.Action("z"))
}
