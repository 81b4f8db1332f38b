// Package config handles configuration for the range server: defaults,
// an optional JSON overlay, environment variables and command-line flags,
// applied in that order.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// MaxUploadSize is the only limit the upload sink enforces.
const MaxUploadSize int64 = 10 << 20

// Config holds runtime settings for the range server.
//
// Fields:
//   - Port, NodeEnv: listen port and the reported environment name.
//   - DBHost / DBPort / DBUser / DBPassword / DBName: PostgreSQL connection (pgx).
//   - JWTSecret: static secret mixed into session tokens. It is never used to sign anything.
//   - UploadDir / MaxUploadSize: upload sink location and size ceiling.
//   - DBConnectAttempts / DBConnectDelay: bounded startup retry against the store.
//   - FetchTimeout / FetchMaxRedirects: outbound fetch proxy limits.
//   - S3*: optional object-storage mirror for uploads; disabled while S3Bucket is empty.
type Config struct {
	Port       string
	NodeEnv    string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	UploadDir     string
	MaxUploadSize int64

	DBConnectAttempts int
	DBConnectDelay    time.Duration

	FetchTimeout      time.Duration
	FetchMaxRedirects int

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3RootUser     string
	S3RootPassword string
}

// LoadDefaults populates Config with the range's stock values. They are the
// credentials learners are expected to find.
func (c *Config) LoadDefaults() {
	c.Port = "3000"
	c.NodeEnv = "development"
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBUser = "wcorp_user"
	c.DBPassword = "wcorp_pass"
	c.DBName = "wcorp_db"
	c.JWTSecret = "predictable_secret_key_123"
	c.UploadDir = "uploads"
	c.MaxUploadSize = MaxUploadSize
	c.DBConnectAttempts = 10
	c.DBConnectDelay = 2 * time.Second
	c.FetchTimeout = 5 * time.Second
	c.FetchMaxRedirects = 5
	c.S3Region = "us-east-1"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DatabaseDSN renders the pgx connection string for the configured store.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// MirrorEnabled reports whether uploads are copied to object storage.
func (c *Config) MirrorEnabled() bool {
	return c.S3Bucket != ""
}

func (c *Config) String() string {
	return fmt.Sprintf("env=%s addr=%s db=%s@%s:%d/%s uploads=%s", c.NodeEnv, c.Addr(), c.DBUser, c.DBHost, c.DBPort, c.DBName, c.UploadDir)
}

// LoadConfig builds a Config by applying defaults, then the optional JSON
// file, then environment variables and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
