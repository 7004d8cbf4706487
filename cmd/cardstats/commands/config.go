package commands

import (
	devenv "cardstats/dev/env"
	"cardstats/internal/acquire"
	"cardstats/internal/catalog"
	"cardstats/internal/extract"
	"cardstats/internal/mirror"
	"cardstats/internal/publish"
	"cardstats/internal/telemetry"
	"cardstats/lib/configutil"
	configlibsql "cardstats/lib/configutil/libsql"
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SourceConfig struct {
	ListingURL        string  `json:"listing_url"`
	LinkPattern       string  `json:"link_pattern"`
	UserAgent         string  `json:"user_agent"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	// optional, request/response dumps for debugging the scraper
	DumpDir string `json:"dump_dir"`
}

type Config struct {
	OutputDir    string `json:"output_dir"`
	DownloadsDir string `json:"downloads_dir"`
	Manifest     string `json:"manifest"`
	// optional json5 object of spelling -> canonical bank name
	AliasesFile string                `json:"aliases_file"`
	Source      SourceConfig          `json:"source"`
	Extract     extract.PatternConfig `json:"extract"`
	Mirror      configlibsql.Struct   `json:"mirror"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:    "docs/data",
		DownloadsDir: "downloads",
		Manifest:     "downloads/manifest.jsonl",
		Source: SourceConfig{
			ListingURL:        acquire.DefaultListingURL,
			LinkPattern:       acquire.DefaultLinkPattern,
			UserAgent:         acquire.DefaultUserAgent,
			TimeoutSeconds:    int(acquire.DefaultTimeout / time.Second),
			RequestsPerSecond: 2,
		},
		Extract: extract.DefaultPatternConfig(),
	}
}

// LoadConfig reads the config file (a missing one means defaults) and
// expands `<dev_state>` paths.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadWithDefaults(path, DefaultConfig())
	if err != nil {
		return Config{}, err
	}

	for _, p := range []*string{
		&cfg.OutputDir,
		&cfg.DownloadsDir,
		&cfg.Manifest,
		&cfg.AliasesFile,
		&cfg.Source.DumpDir,
	} {
		if *p == "" {
			continue
		}
		*p, err = devenv.ResolvePath(*p)
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c Config) AcquireConfig() acquire.Config {
	return acquire.Config{
		ListingURL:        c.Source.ListingURL,
		LinkPattern:       c.Source.LinkPattern,
		UserAgent:         c.Source.UserAgent,
		Timeout:           time.Duration(c.Source.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.Source.RequestsPerSecond,
		DumpDir:           c.Source.DumpDir,
	}
}

// NewEmitter builds the emitter described by the config. The returned
// database is nil when no mirror is configured, the caller closes it.
func (c Config) NewEmitter(ctx context.Context) (*publish.Emitter, *sql.DB, error) {
	opts, err := c.Extract.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("extract patterns: %w", err)
	}
	aliases, err := catalog.LoadAliases(c.AliasesFile)
	if err != nil {
		return nil, nil, err
	}
	emitter := publish.NewEmitter(c.OutputDir, opts, aliases, telemetry.SlogAPI{})

	if !c.Mirror.Configured() {
		return emitter, nil, nil
	}
	database, err := c.Mirror.OpenDB()
	if err != nil {
		return nil, nil, fmt.Errorf("open mirror: %w", err)
	}
	store := mirror.NewStore(database)
	err = store.Migrate(ctx)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrate mirror: %w", err)
	}
	emitter.Mirror = &store
	return emitter, database, nil
}
