// Package config loads application settings from a config file, POOLSHEET_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/feed"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/parser"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/teams"
)

// EnvPrefix prefixes every environment override, e.g. POOLSHEET_DATA_DIR.
const EnvPrefix = "POOLSHEET"

// Config is the application configuration loaded by Load.
type Config struct {
	DataDir   string              `mapstructure:"data_dir"`
	SheetName string              `mapstructure:"sheet_name"`
	AliasFile string              `mapstructure:"alias_file"`
	Rules     models.ParsingRules `mapstructure:"rules"`
	Parser    ParserConfig        `mapstructure:"parser"`
	Feed      FeedConfig          `mapstructure:"feed"`
	Log       LogConfig           `mapstructure:"log"`
	Server    ServerConfig        `mapstructure:"server"`
}

// ParserConfig tunes the region probes.
type ParserConfig struct {
	GameProbeColumns    int `mapstructure:"game_probe_columns"`
	GameProbeRows       int `mapstructure:"game_probe_rows"`
	StandingsProbeAbove int `mapstructure:"standings_probe_above"`
	StandingsProbeBelow int `mapstructure:"standings_probe_below"`
	PickProbeColumns    int `mapstructure:"pick_probe_columns"`
	MaxGames            int `mapstructure:"max_games"`
}

// FeedConfig configures the score feed and its cache.
type FeedConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	RateLimit   time.Duration `mapstructure:"rate_limit"`
	TripAfter   uint32        `mapstructure:"trip_after"`
	Season      bool          `mapstructure:"season"`
	Concurrency int           `mapstructure:"concurrency"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	RedisDB     int           `mapstructure:"redis_db"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "content/_data")
	v.SetDefault("sheet_name", poolsheet.DefaultSheetName)
	v.SetDefault("alias_file", "")

	v.SetDefault("rules.games", []string{"K:3"})
	v.SetDefault("rules.standings", []string{"K:22"})
	v.SetDefault("rules.player_picks", []string{"A:2"})

	p := parser.DefaultOptions()
	v.SetDefault("parser.game_probe_columns", p.GameProbeColumns)
	v.SetDefault("parser.game_probe_rows", p.GameProbeRows)
	v.SetDefault("parser.standings_probe_above", p.StandingsProbeAbove)
	v.SetDefault("parser.standings_probe_below", p.StandingsProbeBelow)
	v.SetDefault("parser.pick_probe_columns", p.PickProbeColumns)
	v.SetDefault("parser.max_games", 0) // derive from anchors

	v.SetDefault("feed.enabled", true)
	v.SetDefault("feed.base_url", feed.DefaultScoreboardURL)
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.cache_ttl", feed.DefaultCacheTTL.String())
	v.SetDefault("feed.rate_limit", "500ms")
	v.SetDefault("feed.trip_after", 5)
	v.SetDefault("feed.season", true)
	v.SetDefault("feed.concurrency", poolsheet.DefaultConcurrency)
	v.SetDefault("feed.redis_addr", "")
	v.SetDefault("feed.redis_db", 0)
	v.SetDefault("feed.redis_prefix", "poolsheet:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
}

// Load reads configuration. An empty path searches for poolsheet.{toml,yaml,json}
// in the working directory; a missing file is not an error unless path was
// given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("poolsheet")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// ParserOptions converts the parser section.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		GameProbeColumns:    c.Parser.GameProbeColumns,
		GameProbeRows:       c.Parser.GameProbeRows,
		StandingsProbeAbove: c.Parser.StandingsProbeAbove,
		StandingsProbeBelow: c.Parser.StandingsProbeBelow,
		PickProbeColumns:    c.Parser.PickProbeColumns,
		MaxGames:            c.Parser.MaxGames,
	}
}

// ExtractOptions builds the extraction options for a build pass.
func (c *Config) ExtractOptions(log logrus.FieldLogger) poolsheet.Options {
	return poolsheet.Options{
		SheetName:   c.SheetName,
		Rules:       c.Rules,
		Parser:      c.ParserOptions(),
		Concurrency: c.Feed.Concurrency,
		Logger:      log,
	}
}

// Aliases returns the default alias table merged with the alias file, if any.
func (c *Config) Aliases() (teams.AliasTable, error) {
	aliases := teams.DefaultAliases()
	if c.AliasFile == "" {
		return aliases, nil
	}
	f, err := os.Open(c.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("open alias file: %w", err)
	}
	defer f.Close()

	override, err := teams.LoadAliases(f)
	if err != nil {
		return nil, err
	}
	return aliases.Merge(override), nil
}

// ScoreClient builds the score feed client, or nil when the feed is disabled.
// Scores are cached in Redis when an address is configured.
func (c *Config) ScoreClient(log logrus.FieldLogger) *feed.Client {
	if !c.Feed.Enabled {
		return nil
	}
	var cache feed.Cache
	if c.Feed.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: c.Feed.RedisAddr,
			DB:   c.Feed.RedisDB,
		})
		cache = feed.NewRedisCache(rdb, c.Feed.RedisPrefix)
	}
	return feed.NewClient(feed.Config{
		BaseURL:   c.Feed.BaseURL,
		Timeout:   c.Feed.Timeout,
		CacheTTL:  c.Feed.CacheTTL,
		RateLimit: c.Feed.RateLimit,
		TripAfter: c.Feed.TripAfter,
		Season:    c.Feed.Season,
	}, cache, log)
}
