// Package config loads the application configuration from file and
// environment, merging user overrides over built-in defaults.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Theme    string         `yaml:"theme" mapstructure:"theme"`
	Dataset  string         `yaml:"dataset" mapstructure:"dataset"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Critic   CriticConfig   `yaml:"critic" mapstructure:"critic"`
	Feedback FeedbackConfig `yaml:"feedback" mapstructure:"feedback"`
	Research ResearchConfig `yaml:"research" mapstructure:"research"`
	SEO      SEOConfig      `yaml:"seo" mapstructure:"seo"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Engine   EngineConfig   `yaml:"engine" mapstructure:"engine"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// BandAdjustments holds the per-price-band score delta for one dimension.
type BandAdjustments struct {
	Low  int `yaml:"low" mapstructure:"low"`
	Mid  int `yaml:"mid" mapstructure:"mid"`
	High int `yaml:"high" mapstructure:"high"`
}

// ScoringConfig configures the heuristic scoring engine.
type ScoringConfig struct {
	DemandMax      int `yaml:"demand_max" mapstructure:"demand_max"`
	AcquisitionMax int `yaml:"acquisition_max" mapstructure:"acquisition_max"`
	ComplexityMax  int `yaml:"complexity_max" mapstructure:"complexity_max"`
	CompetitionMax int `yaml:"competition_max" mapstructure:"competition_max"`
	VelocityMax    int `yaml:"velocity_max" mapstructure:"velocity_max"`

	// Price band thresholds applied to the average parsed price.
	LowMaxPrice float64 `yaml:"low_max_price" mapstructure:"low_max_price"`
	MidMaxPrice float64 `yaml:"mid_max_price" mapstructure:"mid_max_price"`

	DemandBand      BandAdjustments `yaml:"demand_band" mapstructure:"demand_band"`
	AcquisitionBand BandAdjustments `yaml:"acquisition_band" mapstructure:"acquisition_band"`
	ComplexityBand  BandAdjustments `yaml:"complexity_band" mapstructure:"complexity_band"`
}

// CriticConfig configures the credibility critic. Magnitudes are
// configurable; the 3-year stale and 1-year recent cutoffs are fixed.
type CriticConfig struct {
	TrustedDomains  []string `yaml:"trusted_domains" mapstructure:"trusted_domains"`
	BlockedDomains  []string `yaml:"blocked_domains" mapstructure:"blocked_domains"`
	NoveltyKeywords []string `yaml:"novelty_keywords" mapstructure:"novelty_keywords"`

	TrustedBonus   float64 `yaml:"trusted_bonus" mapstructure:"trusted_bonus"`
	BlockedPenalty float64 `yaml:"blocked_penalty" mapstructure:"blocked_penalty"`
	NoveltyPenalty float64 `yaml:"novelty_penalty" mapstructure:"novelty_penalty"`
	StalePenalty   float64 `yaml:"stale_penalty" mapstructure:"stale_penalty"`
	RecentBonus    float64 `yaml:"recent_bonus" mapstructure:"recent_bonus"`
}

// FeedbackConfig configures user rating persistence.
type FeedbackConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ResearchConfig configures the idea research sources.
type ResearchConfig struct {
	MinCredibility string   `yaml:"min_credibility" mapstructure:"min_credibility"`
	SourceFiles    []string `yaml:"source_files" mapstructure:"source_files"`
	SearchKey      string   `yaml:"search_key" mapstructure:"search_key"`
	SearchBaseURL  string   `yaml:"search_base_url" mapstructure:"search_base_url"`
	CacheTTLHours  int      `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// SEOConfig configures the keyword metrics provider.
type SEOConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// StoreConfig configures the local research cache. An empty path disables
// caching.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EngineConfig configures the refinement loop.
type EngineConfig struct {
	MaxIterations      int `yaml:"max_iterations" mapstructure:"max_iterations"`
	CandidatesPerRound int `yaml:"candidates_per_round" mapstructure:"candidates_per_round"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and the environment.
// Missing or unreadable files fall back to defaults; a partial file merges
// over defaults key by key.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OPPORTUNITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("theme", "micro saas")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("scoring.demand_max", 30)
	v.SetDefault("scoring.acquisition_max", 20)
	v.SetDefault("scoring.complexity_max", 20)
	v.SetDefault("scoring.competition_max", 20)
	v.SetDefault("scoring.velocity_max", 10)
	v.SetDefault("scoring.low_max_price", 100.0)
	v.SetDefault("scoring.mid_max_price", 500.0)
	v.SetDefault("scoring.demand_band.low", 2)
	v.SetDefault("scoring.demand_band.mid", 0)
	v.SetDefault("scoring.demand_band.high", -1)
	v.SetDefault("scoring.acquisition_band.low", 1)
	v.SetDefault("scoring.acquisition_band.mid", 0)
	v.SetDefault("scoring.acquisition_band.high", -1)
	v.SetDefault("scoring.complexity_band.low", 1)
	v.SetDefault("scoring.complexity_band.mid", 0)
	v.SetDefault("scoring.complexity_band.high", -1)

	v.SetDefault("critic.trusted_domains", []string{
		"ycombinator.com", "indiehackers.com", "techcrunch.com", "a16z.com",
	})
	v.SetDefault("critic.blocked_domains", []string{
		"quora.com", "pinterest.com", "slideshare.net",
	})
	v.SetDefault("critic.novelty_keywords", []string{
		"wrapper", "clone", "yet another", "boilerplate",
	})
	v.SetDefault("critic.trusted_bonus", 3.0)
	v.SetDefault("critic.blocked_penalty", -10.0)
	v.SetDefault("critic.novelty_penalty", -5.0)
	v.SetDefault("critic.stale_penalty", -5.0)
	v.SetDefault("critic.recent_bonus", 1.0)

	v.SetDefault("feedback.path", "data/user_feedback.json")

	v.SetDefault("research.min_credibility", "low")
	v.SetDefault("research.search_base_url", "https://api.bing.microsoft.com/v7.0/search")
	v.SetDefault("research.cache_ttl_hours", 24)

	v.SetDefault("seo.base_url", "")

	v.SetDefault("engine.max_iterations", 3)
	v.SetDefault("engine.candidates_per_round", 3)

	// Read config file (optional, never fatal)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			zap.L().Warn("config: unreadable config file, using defaults", zap.Error(err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
