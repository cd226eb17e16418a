package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Charts  ChartsConfig  `mapstructure:"charts"`
	Web     WebConfig     `mapstructure:"web"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     string        `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Service           string `mapstructure:"service"`
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// DatasetConfig points at the CSV the dashboard reads on every request.
type DatasetConfig struct {
	Path  string `mapstructure:"path"`
	Cache bool   `mapstructure:"cache"`
}

type ChartsConfig struct {
	TopN    int      `mapstructure:"top_n"`
	Tracked []string `mapstructure:"tracked"`
}

type WebConfig struct {
	ViewsDir  string `mapstructure:"views_dir"`
	StaticDir string `mapstructure:"static_dir"`
}

// Load reads the YAML config at path, layered under BMI_* environment
// variables. With envOnly the file is skipped and only defaults and env apply.
func Load(path string, envOnly bool) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BMI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8000")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("log.service", "big-mac-index")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("dataset.path", "data/big_mac.csv")
	v.SetDefault("dataset.cache", false)
	v.SetDefault("charts.top_n", 15)
	v.SetDefault("charts.tracked", []string{"USA", "GBR", "CHN", "JPN", "DEU"})
	v.SetDefault("web.views_dir", "views")
	v.SetDefault("web.static_dir", "static")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// PORT is what most PaaS hosts inject; it wins over http_addr.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.HTTPAddr = ":" + port
	}

	for i, code := range cfg.Charts.Tracked {
		cfg.Charts.Tracked[i] = strings.ToUpper(strings.TrimSpace(code))
	}

	return cfg, nil
}
