package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "content/_data", cfg.DataDir)
	assert.Equal(t, "Sheet1", cfg.SheetName)
	assert.Equal(t, []string{"K:3"}, cfg.Rules.Games)
	assert.Equal(t, []string{"A:2"}, cfg.Rules.PlayerPicks)
	assert.Equal(t, 8, cfg.Parser.GameProbeColumns)
	assert.Equal(t, 40, cfg.Parser.StandingsProbeBelow)
	assert.True(t, cfg.Feed.Enabled)
	assert.Equal(t, feed.DefaultScoreboardURL, cfg.Feed.BaseURL)
	assert.Equal(t, 4*time.Hour, cfg.Feed.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 4, cfg.Feed.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poolsheet.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/srv/pool"

[rules]
games = ["L:4"]
standings = ["L:25"]
player_picks = ["A:3", "A:40"]

[parser]
max_games = 16

[feed]
enabled = false
cache_ttl = "1h"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/pool", cfg.DataDir)
	assert.Equal(t, []string{"L:4"}, cfg.Rules.Games)
	assert.Equal(t, []string{"A:3", "A:40"}, cfg.Rules.PlayerPicks)
	assert.Equal(t, 16, cfg.ParserOptions().MaxGames)
	assert.Equal(t, 8, cfg.ParserOptions().PickProbeColumns)
	assert.False(t, cfg.Feed.Enabled)
	assert.Equal(t, time.Hour, cfg.Feed.CacheTTL)
	assert.Nil(t, cfg.ScoreClient(nil))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POOLSHEET_DATA_DIR", "/data")
	t.Setenv("POOLSHEET_FEED_CONCURRENCY", "2")
	t.Setenv("POOLSHEET_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 2, cfg.Feed.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts := cfg.ExtractOptions(nil)
	assert.Equal(t, 2, opts.Concurrency)
	assert.Equal(t, "Sheet1", opts.SheetName)
	assert.NotNil(t, cfg.ScoreClient(nil))
}

func TestAliases(t *testing.T) {
	cfg := &Config{}
	aliases, err := cfg.Aliases()
	require.NoError(t, err)
	code, err := aliases.Resolve("BOYS")
	require.NoError(t, err)
	assert.Equal(t, "DAL", code)

	path := filepath.Join(t.TempDir(), "aliases.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[aliases]
BOYS = ["DAL"]
"L.V." = ["LV", "LAS VEGAS"]
`), 0o644))
	cfg.AliasFile = path

	aliases, err = cfg.Aliases()
	require.NoError(t, err)
	code, err = aliases.Resolve("l.v.")
	require.NoError(t, err)
	assert.Equal(t, "LV", code)
	code, err = aliases.Resolve("PHIL")
	require.NoError(t, err)
	assert.Equal(t, "PHI", code)

	cfg.AliasFile = filepath.Join(t.TempDir(), "missing.toml")
	_, err = cfg.Aliases()
	assert.Error(t, err)
}
