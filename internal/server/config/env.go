package config

import (
	"github.com/spf13/viper"
)

// parseEnv overlays values from the process environment. The variable names
// are the ones the range has always used (DB_HOST, JWT_SECRET, PORT, ...).
func parseEnv(config *Config) {
	v := viper.New()
	v.AutomaticEnv()

	str := func(dst *string, key string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(dst *int, key string) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	str(&config.Port, "PORT")
	str(&config.NodeEnv, "NODE_ENV")
	str(&config.DBHost, "DB_HOST")
	num(&config.DBPort, "DB_PORT")
	str(&config.DBUser, "DB_USER")
	str(&config.DBPassword, "DB_PASSWORD")
	str(&config.DBName, "DB_NAME")
	str(&config.JWTSecret, "JWT_SECRET")
	str(&config.UploadDir, "UPLOAD_DIR")
	num(&config.DBConnectAttempts, "DB_CONNECT_ATTEMPTS")
	if v.IsSet("DB_CONNECT_DELAY") {
		config.DBConnectDelay = v.GetDuration("DB_CONNECT_DELAY")
	}
	if v.IsSet("FETCH_TIMEOUT") {
		config.FetchTimeout = v.GetDuration("FETCH_TIMEOUT")
	}
	num(&config.FetchMaxRedirects, "FETCH_MAX_REDIRECTS")
	str(&config.S3Bucket, "S3_BUCKET")
	str(&config.S3Region, "S3_REGION")
	str(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	str(&config.S3RootUser, "S3_ROOT_USER")
	str(&config.S3RootPassword, "S3_ROOT_PASSWORD")
}
