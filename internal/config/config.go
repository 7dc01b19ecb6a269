package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "Asia/Jakarta"
	configPathEnv     = "STOCK_RECOMMENDER_CONFIG"
	databasePathEnv   = "DATABASE_PATH"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging        LoggingConfig        `yaml:"logging"`
	Database       DatabaseConfig       `yaml:"database"`
	Scheduler      SchedulerConfig      `yaml:"scheduler"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Notifications  NotificationConfig   `yaml:"notifications"`
	Sites          []SiteConfig         `yaml:"sites"`
	Stocks         []StockConfig        `yaml:"stocks"`
}

// LoggingConfig controls the slog handler level and output format
// ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig describes the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines when the scrape-and-rank job runs.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// RecommendationConfig carries scoring weights and sentiment thresholds.
type RecommendationConfig struct {
	SentimentWeight   float64 `yaml:"sentimentWeight"`
	SimilarityWeight  float64 `yaml:"similarityWeight"`
	PositiveThreshold float64 `yaml:"positiveThreshold"`
	NegativeThreshold float64 `yaml:"negativeThreshold"`
	TopN              int     `yaml:"topN"`
	NewsWindowDays    int     `yaml:"newsWindowDays"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// StockConfig is one entry of the tracked stock universe, upserted into
// storage at startup.
type StockConfig struct {
	Code      string   `yaml:"code"`
	Name      string   `yaml:"name"`
	Sector    string   `yaml:"sector"`
	SubSector string   `yaml:"subSector"`
	Indexes   []string `yaml:"indexes"`
}

// SiteConfig describes a single news site with its scanner strategy.
type SiteConfig struct {
	Name      string            `yaml:"name"`
	Scanner   string            `yaml:"scanner"`
	SearchURL string            `yaml:"searchUrl"`
	Options   map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
				cfg.Recommendation = applyRecommendationOverrides(cfg.Recommendation, raw)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}
	if len(cfg.Stocks) == 0 {
		cfg.Stocks = defaultConfig().Stocks
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

// applyRecommendationOverrides re-reads the recommendation section through
// pointer fields, so a key explicitly set to zero overrides the default
// while an absent key keeps it.
func applyRecommendationOverrides(base RecommendationConfig, raw []byte) RecommendationConfig {
	var file struct {
		Recommendation struct {
			SentimentWeight   *float64 `yaml:"sentimentWeight"`
			SimilarityWeight  *float64 `yaml:"similarityWeight"`
			PositiveThreshold *float64 `yaml:"positiveThreshold"`
			NegativeThreshold *float64 `yaml:"negativeThreshold"`
			TopN              *int     `yaml:"topN"`
			NewsWindowDays    *int     `yaml:"newsWindowDays"`
		} `yaml:"recommendation"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return base
	}

	o := file.Recommendation
	if o.SentimentWeight != nil {
		base.SentimentWeight = *o.SentimentWeight
	}
	if o.SimilarityWeight != nil {
		base.SimilarityWeight = *o.SimilarityWeight
	}
	if o.PositiveThreshold != nil {
		base.PositiveThreshold = *o.PositiveThreshold
	}
	if o.NegativeThreshold != nil {
		base.NegativeThreshold = *o.NegativeThreshold
	}
	if o.TopN != nil {
		base.TopN = *o.TopN
	}
	if o.NewsWindowDays != nil {
		base.NewsWindowDays = *o.NewsWindowDays
	}
	return base
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}
	if len(override.Stocks) > 0 {
		base.Stocks = override.Stocks
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Database:  DatabaseConfig{Path: "data/stocks.db"},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Recommendation: RecommendationConfig{
			SentimentWeight:   0.4,
			SimilarityWeight:  0.6,
			PositiveThreshold: 0.1,
			NegativeThreshold: -0.1,
			TopN:              10,
			NewsWindowDays:    30,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Sites: []SiteConfig{
			{
				Name:      "kontan",
				Scanner:   "kontan",
				SearchURL: "https://www.kontan.co.id/search/?search=",
			},
			{
				Name:      "detik",
				Scanner:   "detik",
				SearchURL: "https://www.detik.com/search/searchall?query=",
			},
		},
		Stocks: defaultStocks(),
	}
}

// defaultStocks is a starter universe of liquid IDX names; a real
// deployment overrides it with the full list in the YAML file.
func defaultStocks() []StockConfig {
	return []StockConfig{
		{Code: "BBCA", Name: "Bank Central Asia", Sector: "Financials", Indexes: []string{"IHSG", "LQ45", "IDX30"}},
		{Code: "BBRI", Name: "Bank Rakyat Indonesia", Sector: "Financials", Indexes: []string{"IHSG", "LQ45", "IDX30"}},
		{Code: "BMRI", Name: "Bank Mandiri", Sector: "Financials", Indexes: []string{"IHSG", "LQ45", "IDX30"}},
		{Code: "TLKM", Name: "Telkom Indonesia", Sector: "Infrastructure", Indexes: []string{"IHSG", "LQ45", "IDX30"}},
		{Code: "ASII", Name: "Astra International", Sector: "Industrials", Indexes: []string{"IHSG", "LQ45", "IDX30"}},
		{Code: "UNVR", Name: "Unilever Indonesia", Sector: "Consumer", Indexes: []string{"IHSG", "LQ45"}},
		{Code: "ICBP", Name: "Indofood CBP", Sector: "Consumer", Indexes: []string{"IHSG", "LQ45"}},
		{Code: "ANTM", Name: "Aneka Tambang", Sector: "Basic Materials", Indexes: []string{"IHSG", "LQ45"}},
		{Code: "GOTO", Name: "GoTo Gojek Tokopedia", Sector: "Technology", Indexes: []string{"IHSG", "LQ45"}},
		{Code: "ADRO", Name: "Adaro Energy", Sector: "Energy", Indexes: []string{"IHSG", "LQ45"}},
	}
}
