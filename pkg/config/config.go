package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema -o schema.json

// filtering and ranking modes
const (
	FilteringSource  = "source"
	FilteringKeyword = "keyword"
	RankingSmart     = "smart"
	RankingLegacy    = "legacy"
)

// endpoint strategy types
const (
	EndpointDirect = "direct"
	EndpointRaw    = "raw"
	EndpointJSON   = "json"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS output links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdesk.db?cache=shared&mode=rwc,description=Feed health database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Sections map[string][]string `yaml:"sections" json:"sections" jsonschema:"description=Section name to ordered list of feed URLs"`

	Settings Settings `yaml:"settings" json:"settings" jsonschema:"description=Ranking and filtering settings"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout    time.Duration    `yaml:"timeout" json:"timeout" jsonschema:"default=8s,description=Timeout of a single endpoint attempt"`
	UserAgent  string           `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Newsdesk/1.0),description=User agent for feed requests"`
	MaxWorkers int              `yaml:"max_workers" json:"max_workers" jsonschema:"default=8,minimum=1,description=Maximum concurrent feed fetches per section"`
	Endpoints  []EndpointConfig `yaml:"endpoints" json:"endpoints" jsonschema:"description=Ordered endpoint strategies tried for every feed"`

	RefreshInterval time.Duration `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"default=4m,description=Background refresh interval of all sections, 0 disables"`
	PruneInterval   time.Duration `yaml:"prune_interval" json:"prune_interval" jsonschema:"default=10m,description=Interval of breaking story pruning"`
}

// EndpointConfig describes one endpoint strategy
type EndpointConfig struct {
	Name     string `yaml:"name" json:"name" jsonschema:"description=Endpoint name used in logs and stats"`
	Type     string `yaml:"type" json:"type" jsonschema:"enum=direct,enum=raw,enum=json,description=Strategy type"`
	Template string `yaml:"template" json:"template" jsonschema:"description=Proxy URL template with a single %s for the escaped feed URL"`
}

// Settings holds every ranking, filtering and scoring knob
type Settings struct {
	FilteringMode          string          `yaml:"filtering_mode" json:"filtering_mode" jsonschema:"default=source,enum=source,enum=keyword,description=Article filtering mode"`
	RankingMode            string          `yaml:"ranking_mode" json:"ranking_mode" jsonschema:"default=smart,enum=smart,enum=legacy,description=Section ordering mode"`
	HideOlderThanHours     int             `yaml:"hide_older_than_hours" json:"hide_older_than_hours" jsonschema:"default=60,description=Drop articles older than this many hours"`
	StrictFreshness        bool            `yaml:"strict_freshness" json:"strict_freshness" jsonschema:"default=false,description=Never fall back to stale or undated articles"`
	EnableNewScoring       bool            `yaml:"enable_new_scoring" json:"enable_new_scoring" jsonschema:"default=true,description=Use full multi-factor scoring instead of legacy"`
	EnableProximityScoring bool            `yaml:"enable_proximity_scoring" json:"enable_proximity_scoring" jsonschema:"default=true,description=Enable the geographic proximity factor"`
	MaxTopicPercent        int             `yaml:"max_topic_percent" json:"max_topic_percent" jsonschema:"default=40,minimum=1,maximum=100,description=Front page share cap per topic"`
	MaxGeoPercent          int             `yaml:"max_geo_percent" json:"max_geo_percent" jsonschema:"default=30,minimum=1,maximum=100,description=Front page share cap per geography"`
	FrontPageLimit         int             `yaml:"front_page_limit" json:"front_page_limit" jsonschema:"default=20,minimum=1,description=Front page size"`
	SectionLimit           int             `yaml:"section_limit" json:"section_limit" jsonschema:"default=50,minimum=1,description=Maximum articles returned per section"`
	RankingWeights         RankingWeights  `yaml:"ranking_weights" json:"ranking_weights" jsonschema:"description=Multiplier weights"`
	NewsSources            map[string]bool `yaml:"news_sources" json:"news_sources" jsonschema:"description=Per publisher allowlist, false disables a publisher in source filtering mode"`
	EnableCache            bool            `yaml:"enable_cache" json:"enable_cache" jsonschema:"default=true,description=Cache ranked sections"`
	CacheTTL               time.Duration   `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=5m,description=Section cache TTL"`
	FollowedTopics         []string        `yaml:"followed_topics" json:"followed_topics" jsonschema:"description=Topics the reader follows"`
	HomeCities             []string        `yaml:"home_cities" json:"home_cities" jsonschema:"description=Reader home cities for proximity scoring"`
	Tuning                 Tuning          `yaml:"tuning" json:"tuning" jsonschema:"description=Hand-tuned constants of scoring and clustering"`
}

// RankingWeights holds configurable multiplier weights
type RankingWeights struct {
	Temporal struct {
		WeekendBoost       float64 `yaml:"weekend_boost" json:"weekend_boost" jsonschema:"default=2.0,description=Weekend boost for leisure sections"`
		EntertainmentBoost float64 `yaml:"entertainment_boost" json:"entertainment_boost" jsonschema:"default=2.5,description=Entertainment section boost"`
	} `yaml:"temporal" json:"temporal"`
	Geo struct {
		CityMatch float64 `yaml:"city_match" json:"city_match" jsonschema:"default=2.0,description=Proximity weight of a home city match"`
		MaxScore  float64 `yaml:"max_score" json:"max_score" jsonschema:"default=5.0,description=Proximity multiplier cap"`
	} `yaml:"geo" json:"geo"`
	Base struct {
		Freshness         float64 `yaml:"freshness" json:"freshness" jsonschema:"default=3,description=Weight of the freshness term"`
		Source            float64 `yaml:"source" json:"source" jsonschema:"default=5,description=Weight of the source authority term"`
		Keyword           float64 `yaml:"keyword" json:"keyword" jsonschema:"default=2,description=Boost for high impact keywords"`
		PositiveSentiment float64 `yaml:"positive_sentiment" json:"positive_sentiment" jsonschema:"default=0.5,description=Boost for positive sentiment"`
		NegativeSentiment float64 `yaml:"negative_sentiment" json:"negative_sentiment" jsonschema:"default=0.3,description=Boost for negative sentiment"`
		OffCategory       float64 `yaml:"off_category" json:"off_category" jsonschema:"default=0.7,description=Source weight outside its strong categories"`
	} `yaml:"base" json:"base"`
	Factors struct {
		ImpactMax         float64 `yaml:"impact_max" json:"impact_max" jsonschema:"default=2.25,description=Impact multiplier cap"`
		NoveltyMax        float64 `yaml:"novelty_max" json:"novelty_max" jsonschema:"default=0.5,description=Maximal novelty boost over 1.0"`
		Currency          float64 `yaml:"currency" json:"currency" jsonschema:"default=1.5,description=Multiplier for followed topics"`
		HumanInterestStep float64 `yaml:"human_interest_step" json:"human_interest_step" jsonschema:"default=0.2,description=Boost per human interest keyword"`
		HumanInterestMax  float64 `yaml:"human_interest_max" json:"human_interest_max" jsonschema:"default=2.0,description=Human interest multiplier cap"`
		Video             float64 `yaml:"video" json:"video" jsonschema:"default=1.3,description=Multiplier for video media"`
		Image             float64 `yaml:"image" json:"image" jsonschema:"default=1.15,description=Multiplier for image media"`
		OtherMedia        float64 `yaml:"other_media" json:"other_media" jsonschema:"default=1.1,description=Multiplier for other media"`
	} `yaml:"factors" json:"factors"`
	SectionPriority map[string]float64 `yaml:"section_priority" json:"section_priority" jsonschema:"description=Per section score multiplier, missing sections use 1.0"`
}

// Tuning holds constants kept for behavior compatibility, overridable but not derived
type Tuning struct {
	FreshnessWindow         time.Duration `yaml:"freshness_window" json:"freshness_window" jsonschema:"default=26h,description=Age at which freshness reaches zero"`
	ClusterSimilarity       float64       `yaml:"cluster_similarity" json:"cluster_similarity" jsonschema:"default=0.75,description=Title similarity to join a cluster"`
	BreakingSimilarity      float64       `yaml:"breaking_similarity" json:"breaking_similarity" jsonschema:"default=0.7,description=Word overlap to match a tracked story"`
	BreakingWindow          time.Duration `yaml:"breaking_window" json:"breaking_window" jsonschema:"default=60m,description=Corroboration and article age window"`
	BreakingRetention       time.Duration `yaml:"breaking_retention" json:"breaking_retention" jsonschema:"default=120m,description=Tracked story retention"`
	ConsensusBoostPerSource float64       `yaml:"consensus_boost" json:"consensus_boost" jsonschema:"default=0.1,description=Score boost per extra source in a cluster"`
}

// Default returns configuration with every default resolved
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Server.BaseURL = "http://localhost:8080"

	cfg.Database.DSN = "file:newsdesk.db?cache=shared&mode=rwc&_txlock=immediate"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 3600

	cfg.Fetch = FetchConfig{
		Timeout:    8 * time.Second,
		UserAgent:  "Mozilla/5.0 (compatible; Newsdesk/1.0)",
		MaxWorkers: 8,
		Endpoints: []EndpointConfig{
			{Name: "direct", Type: EndpointDirect},
			{Name: "allorigins", Type: EndpointRaw, Template: "https://api.allorigins.win/raw?url=%s"},
			{Name: "rss2json", Type: EndpointJSON, Template: "https://api.rss2json.com/v1/api.json?rss_url=%s"},
		},
		RefreshInterval: 4 * time.Minute,
		PruneInterval:   10 * time.Minute,
	}

	cfg.Sections = map[string][]string{}
	cfg.Settings = DefaultSettings()
	return cfg
}

// DefaultSettings returns settings with defaults applied
func DefaultSettings() Settings {
	s := Settings{
		FilteringMode:          FilteringSource,
		RankingMode:            RankingSmart,
		HideOlderThanHours:     60,
		EnableNewScoring:       true,
		EnableProximityScoring: true,
		MaxTopicPercent:        40,
		MaxGeoPercent:          30,
		FrontPageLimit:         20,
		SectionLimit:           50,
		NewsSources:            map[string]bool{},
		EnableCache:            true,
		CacheTTL:               5 * time.Minute,
		Tuning: Tuning{
			FreshnessWindow:         26 * time.Hour,
			ClusterSimilarity:       0.75,
			BreakingSimilarity:      0.7,
			BreakingWindow:          60 * time.Minute,
			BreakingRetention:       120 * time.Minute,
			ConsensusBoostPerSource: 0.1,
		},
	}
	s.RankingWeights.Temporal.WeekendBoost = 2.0
	s.RankingWeights.Temporal.EntertainmentBoost = 2.5
	s.RankingWeights.Geo.CityMatch = 2.0
	s.RankingWeights.Geo.MaxScore = 5.0
	s.RankingWeights.Base.Freshness = 3
	s.RankingWeights.Base.Source = 5
	s.RankingWeights.Base.Keyword = 2
	s.RankingWeights.Base.PositiveSentiment = 0.5
	s.RankingWeights.Base.NegativeSentiment = 0.3
	s.RankingWeights.Base.OffCategory = 0.7
	s.RankingWeights.Factors.ImpactMax = 2.25
	s.RankingWeights.Factors.NoveltyMax = 0.5
	s.RankingWeights.Factors.Currency = 1.5
	s.RankingWeights.Factors.HumanInterestStep = 0.2
	s.RankingWeights.Factors.HumanInterestMax = 2.0
	s.RankingWeights.Factors.Video = 1.3
	s.RankingWeights.Factors.Image = 1.15
	s.RankingWeights.Factors.OtherMedia = 1.1
	s.RankingWeights.SectionPriority = map[string]float64{"world": 1.5, "business": 1.2}
	return s
}

// Load reads configuration from a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Sections == nil {
		cfg.Sections = map[string][]string{}
	}
	if cfg.Settings.NewsSources == nil {
		cfg.Settings.NewsSources = map[string]bool{}
	}
	if cfg.Settings.RankingWeights.SectionPriority == nil {
		cfg.Settings.RankingWeights.SectionPriority = map[string]float64{}
	}

	// validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return cfg, nil
}

// validate checks configuration for correctness.
// Filtering and ranking modes are not checked here, unknown values degrade at request time.
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Fetch.Timeout < 100*time.Millisecond {
		return fmt.Errorf("fetch timeout must be at least 100ms")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch.max_workers must be at least 1")
	}
	if cfg.Fetch.RefreshInterval < 0 {
		return fmt.Errorf("fetch.refresh_interval must not be negative")
	}
	if cfg.Fetch.PruneInterval < time.Second {
		return fmt.Errorf("fetch.prune_interval must be at least 1 second")
	}
	if len(cfg.Fetch.Endpoints) == 0 {
		return fmt.Errorf("fetch.endpoints must not be empty")
	}
	for i, ep := range cfg.Fetch.Endpoints {
		switch ep.Type {
		case EndpointDirect:
		case EndpointRaw, EndpointJSON:
			if ep.Template == "" {
				return fmt.Errorf("fetch.endpoints[%d]: template is required for %s endpoint", i, ep.Type)
			}
		default:
			return fmt.Errorf("fetch.endpoints[%d]: unknown type %q", i, ep.Type)
		}
	}

	s := cfg.Settings
	if s.MaxTopicPercent < 1 || s.MaxTopicPercent > 100 {
		return fmt.Errorf("settings.max_topic_percent must be between 1 and 100")
	}
	if s.MaxGeoPercent < 1 || s.MaxGeoPercent > 100 {
		return fmt.Errorf("settings.max_geo_percent must be between 1 and 100")
	}
	if s.FrontPageLimit < 1 {
		return fmt.Errorf("settings.front_page_limit must be at least 1")
	}
	if s.SectionLimit < 1 {
		return fmt.Errorf("settings.section_limit must be at least 1")
	}
	if s.HideOlderThanHours < 1 {
		return fmt.Errorf("settings.hide_older_than_hours must be at least 1")
	}
	if s.Tuning.ClusterSimilarity <= 0 || s.Tuning.ClusterSimilarity > 1 {
		return fmt.Errorf("settings.tuning.cluster_similarity must be in (0, 1]")
	}
	if s.Tuning.BreakingSimilarity <= 0 || s.Tuning.BreakingSimilarity > 1 {
		return fmt.Errorf("settings.tuning.breaking_similarity must be in (0, 1]")
	}
	if err := validateWeights(s.RankingWeights); err != nil {
		return err
	}
	if s.Tuning.FreshnessWindow <= 0 || s.Tuning.BreakingWindow <= 0 || s.Tuning.BreakingRetention < s.Tuning.BreakingWindow {
		return fmt.Errorf("settings.tuning windows must be positive and retention must cover the breaking window")
	}
	return nil
}

func validateWeights(w RankingWeights) error {
	for name, v := range map[string]float64{
		"temporal.weekend_boost": w.Temporal.WeekendBoost, "temporal.entertainment_boost": w.Temporal.EntertainmentBoost,
		"geo.max_score": w.Geo.MaxScore, "factors.impact_max": w.Factors.ImpactMax,
		"factors.currency": w.Factors.Currency, "factors.human_interest_max": w.Factors.HumanInterestMax,
		"factors.video": w.Factors.Video, "factors.image": w.Factors.Image, "factors.other_media": w.Factors.OtherMedia,
	} {
		if v < 1 {
			return fmt.Errorf("settings.ranking_weights.%s is a multiplier and must be at least 1", name)
		}
	}
	for name, v := range map[string]float64{
		"geo.city_match": w.Geo.CityMatch, "base.freshness": w.Base.Freshness, "base.source": w.Base.Source,
		"base.keyword": w.Base.Keyword, "base.positive_sentiment": w.Base.PositiveSentiment,
		"base.negative_sentiment": w.Base.NegativeSentiment, "base.off_category": w.Base.OffCategory,
		"factors.novelty_max": w.Factors.NoveltyMax, "factors.human_interest_step": w.Factors.HumanInterestStep,
	} {
		if v < 0 {
			return fmt.Errorf("settings.ranking_weights.%s must not be negative", name)
		}
	}
	for section, v := range w.SectionPriority {
		if v <= 0 {
			return fmt.Errorf("settings.ranking_weights.section_priority.%s must be positive", section)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public base URL used in RSS links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// SectionNames returns configured section names in sorted order
func (c *Config) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceAllowed reports whether a publisher is allowed by the news_sources allowlist.
// Publishers missing from the map are allowed.
func (s *Settings) SourceAllowed(source string) bool {
	enabled, ok := s.NewsSources[source]
	return !ok || enabled
}
