package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Audit    AuditConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=24h"`
}

// UpstreamConfig locates the REST backend. Path prefixes are configuration,
// not a fixed contract: observed backend revisions disagree on them.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:8000/api/v1"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=30s"`

	ActorsPrefix    string `env:"UPSTREAM_ACTORS_PREFIX,     default=/actors/basic"`
	MediaPrefix     string `env:"UPSTREAM_MEDIA_PREFIX,      default=/actors/media"`
	SelfMediaPrefix string `env:"UPSTREAM_SELF_MEDIA_PREFIX, default=/actors/self-media"`
	TagsPrefix      string `env:"UPSTREAM_TAGS_PREFIX,       default=/actors/tags"`
	AgentPrefix     string `env:"UPSTREAM_AGENT_PREFIX,      default=/actors/agent"`
	AuthPrefix      string `env:"UPSTREAM_AUTH_PREFIX,       default=/system/auth"`
	UsersPrefix     string `env:"UPSTREAM_USERS_PREFIX,      default=/system/users"`
	InvitesPrefix   string `env:"UPSTREAM_INVITES_PREFIX,    default=/invite-codes"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=actorreal"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
