package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SearchConfig holds everything the dispatcher needs: the two upstream
// endpoints, the single API credential and the paging constants.
type SearchConfig struct {
	APIKey           string `mapstructure:"api_key"`
	WebEndpoint      string `mapstructure:"web_endpoint"`
	ImageEndpoint    string `mapstructure:"image_endpoint"`
	PageSize         int    `mapstructure:"page_size"`
	Timeout          int    `mapstructure:"timeout"`
	FaviconURLFormat string `mapstructure:"favicon_url_format"`
}

// FilterConfig holds the two static blocklists. They are read once at
// startup and never mutated afterwards.
type FilterConfig struct {
	Keywords []string `mapstructure:"keywords"`
	Domains  []string `mapstructure:"domains"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(cfgFile string) *Config {
	// Load .env file if exists (ignore error if not found)
	godotenv.Load()
	godotenv.Load(".env.local")

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure environment variable handling
	// Replace . with _ for nested config keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SEARCHDECK")
	v.AutomaticEnv()

	// Read config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")          // Same directory as executable (priority)
		v.AddConfigPath("./configs")  // configs/ subdirectory
		v.AddConfigPath("../configs") // For running from bin/ directory
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is ok, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic("Error reading config file: " + err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("Error unmarshaling config: " + err.Error())
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	// Search defaults
	// api_key default registers the key so AutomaticEnv can fill it
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.web_endpoint", "https://api.bing.microsoft.com/v7.0/search")
	v.SetDefault("search.image_endpoint", "https://api.bing.microsoft.com/v7.0/images/search")
	v.SetDefault("search.page_size", 20)
	v.SetDefault("search.timeout", 10)
	v.SetDefault("search.favicon_url_format", "https://www.google.com/s2/favicons?domain=%s&sz=32")

	// Filter defaults: empty blocklists, supplied via config file or env
	v.SetDefault("filter.keywords", []string{})
	v.SetDefault("filter.domains", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
