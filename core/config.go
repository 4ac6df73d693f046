package core

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// Config is charsheet base configuration
type Config struct {
	Server  Server  `yaml:"server"`
	Discord Discord `yaml:"discord"`
	Cache   Cache   `yaml:"cache"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Discord struct {
	APIBase  string `yaml:"apiBase"`
	BotToken string `yaml:"botToken"`
	Timeout  int    `yaml:"timeout"` // seconds
}

// Cache TTLs in seconds. Zero disables the cache.
type Cache struct {
	CallerTTL int `yaml:"callerTTL"`
	GuildTTL  int `yaml:"guildTTL"`
}

const (
	DefaultAPIBase = "https://discord.com/api"
	DefaultListen  = ":8000"
)

// Load loads charsheet config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open configuration file")
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(c)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration file")
	}

	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Discord.APIBase == "" {
		c.Discord.APIBase = DefaultAPIBase
	}

	return nil
}

func (d Discord) RequestTimeout() time.Duration {
	if d.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.Timeout) * time.Second
}
