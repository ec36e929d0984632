package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

const (
	// configFile is read from the working directory when --config is not given.
	configFile = "waffle.toml"

	// envPrefix prefixes environment overrides, e.g. WAFFLE_CACHE_BACKEND=redis.
	envPrefix = "WAFFLE_"
)

// Config holds the settings shared by all commands.
type Config struct {
	Width   float64     `koanf:"width"`
	Height  float64     `koanf:"height"`
	Format  string      `koanf:"format"`
	Verbose bool        `koanf:"verbose"`
	Cache   CacheConfig `koanf:"cache"`
	Serve   ServeConfig `koanf:"serve"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend       string `koanf:"backend"` // none, file, redis, mongo
	Dir           string `koanf:"dir"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// defaults is the lowest configuration layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"width":   pipeline.DefaultWidth,
		"height":  pipeline.DefaultHeight,
		"format":  pipeline.DefaultFormat,
		"verbose": false,
		"cache": map[string]interface{}{
			"backend":        cache.BackendFile,
			"dir":            "",
			"redis_addr":     "localhost:6379",
			"redis_db":       0,
			"mongo_uri":      "mongodb://localhost:27017",
			"mongo_database": "waffle",
		},
		"serve": map[string]interface{}{
			"addr":          ":8080",
			"read_timeout":  "15s",
			"write_timeout": "60s",
		},
	}
}

// flagKeys maps flag names to configuration keys where they differ.
var flagKeys = map[string]string{
	"cache":      "cache.backend",
	"cache-dir":  "cache.dir",
	"redis-addr": "cache.redis_addr",
	"mongo-uri":  "cache.mongo_uri",
	"addr":       "serve.addr",
}

// sections are the nested tables of the configuration.
var sections = []string{"cache", "serve"}

// LoadConfig loads configuration from defaults, the config file,
// environment variables and flags.
// Priority: Flags > Env > Config File > Defaults
func LoadConfig(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file. An explicit path must exist; the default one may not.
	explicit := path != ""
	if !explicit {
		path = configFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	// 3. Environment variables: WAFFLE_CACHE_REDIS_ADDR -> cache.redis_addr
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagKey(f)), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps an environment variable to a configuration key. Only the
// underscore after a section name becomes a separator.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, sec := range sections {
		if strings.HasPrefix(key, sec+"_") {
			return sec + "." + strings.TrimPrefix(key, sec+"_")
		}
	}
	return key
}

// flagKey renames the flags of fs to their configuration keys.
func flagKey(fs *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		key := f.Name
		if k, ok := flagKeys[key]; ok {
			key = k
		}
		return key, posflag.FlagVal(fs, f)
	}
}

// CacheOptions converts the cache section to [cache.Config].
func (c *Config) CacheOptions() (cache.Config, error) {
	cc := cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoConfig{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cc, err
		}
		cc.Dir = dir
	}
	return cc, nil
}

// mapProvider serves a map as a koanf provider.
type mapProvider map[string]interface{}

func (p mapProvider) Read() (map[string]interface{}, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
