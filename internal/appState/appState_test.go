package appState

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/repository"
	"github.com/isaacphi/awsdocs/internal/tool"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("AWSDOCS_HISTORY_DBPATH", filepath.Join(dir, "data", "history.db"))
	return dir
}

func TestNewWiresToolsAndHistory(t *testing.T) {
	dir := isolate(t)
	logFile := filepath.Join(dir, "awsdocs.log")
	level := "debug"

	app, err := New(&config.RuntimeOverrides{LogFile: &logFile, LogLevel: &level})
	require.NoError(t, err)
	defer app.Close()

	var ids []string
	for _, tl := range app.Tools.List() {
		ids = append(ids, tl.ID)
	}
	assert.Equal(t, []string{tool.ReadDocumentationID, tool.SearchDocumentationID, tool.RecommendID}, ids)
	require.NotNil(t, app.History)

	// rejected by the URL policy before any network access
	out, err := app.Tools.Invoke(context.Background(), tool.ReadDocumentationID, map[string]any{"url": "https://example.com/page.html"})
	require.NoError(t, err)
	assert.Equal(t, "Invalid URL: URL must be from the docs.aws.amazon.com domain", out)

	_, err = app.Tools.Invoke(context.Background(), tool.ReadDocumentationID, map[string]any{})
	require.Error(t, err)

	history, err := app.History.List(context.Background(), repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.ElementsMatch(t,
		[]domain.Outcome{domain.OutcomeOK, domain.OutcomeInvalid},
		[]domain.Outcome{history[0].Outcome, history[1].Outcome})

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "tool invoked")
}

func TestNewWithoutHistory(t *testing.T) {
	isolate(t)
	disabled := false

	app, err := New(&config.RuntimeOverrides{HistoryEnabled: &disabled})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.History)
	assert.Len(t, app.Tools.List(), 3)
}

func TestImportMCPToolsWithoutServers(t *testing.T) {
	isolate(t)
	disabled := false

	app, err := New(&config.RuntimeOverrides{HistoryEnabled: &disabled})
	require.NoError(t, err)

	client, err := app.ImportMCPTools(context.Background())
	require.NoError(t, err)
	assert.Empty(t, client.Tools())
	assert.NoError(t, app.Close())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/.local/share/awsdocs/history.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/awsdocs/history.db"), got)

	got, err = expandHome("/tmp/history.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history.db", got)
}
