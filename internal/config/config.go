package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	Group    string
	Consumer string
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	BucketProofs string
	UseSSL       bool
	Region       string
}

type SecurityConfig struct {
	TenantJWTSecret string
	AdminJWTSecret  string
	TenantTokenTTL  time.Duration
	AdminTokenTTL   time.Duration
	ResetTokenTTL   time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// AccessConfig governs WiFi access grants: how long an approved payment
// keeps a tenant online, upload limits for payment proofs, and where
// MAC authorization changes are dispatched.
type AccessConfig struct {
	GrantPeriod   time.Duration
	MaxProofBytes int64
	ControllerURL string
	SweepSchedule string
}

type BootstrapConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type WorkerConfig struct {
	ClaimInterval time.Duration
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	Access           AccessConfig
	Bootstrap        BootstrapConfig
	Worker           WorkerConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("WIFIPORTAL")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stream", "portal:events")
	v.SetDefault("redis.group", "portal-workers")
	v.SetDefault("redis.consumer", "worker-1")

	v.SetDefault("storage.bucketproofs", "wifiportal-proofs")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("security.tenanttokenttl", "24h")
	v.SetDefault("security.admintokenttl", "12h")
	v.SetDefault("security.resettokenttl", "1h")
	v.SetDefault("security.loginratelimit", 10)
	v.SetDefault("security.loginratewindow", "1m")

	v.SetDefault("access.grantperiod", "720h") // 30 days per approved payment
	v.SetDefault("access.maxproofbytes", 5*1024*1024)
	v.SetDefault("access.sweepschedule", "0 0 2 * * *") // nightly at 02:00

	v.SetDefault("worker.claiminterval", "10s")
}
