package config

import (
	"encoding/json"
	"os"

	"github.com/wcorp/cyberrange/internal/flagx"
	"github.com/wcorp/cyberrange/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted.
type JsonConfig struct {
	Port              string         `json:"port"`
	NodeEnv           string         `json:"node_env"`
	DBHost            string         `json:"db_host"`
	DBPort            int            `json:"db_port"`
	DBUser            string         `json:"db_user"`
	DBPassword        string         `json:"db_password"`
	DBName            string         `json:"db_name"`
	JWTSecret         string         `json:"jwt_secret"`
	UploadDir         string         `json:"upload_dir"`
	DBConnectAttempts int            `json:"db_connect_attempts"`
	DBConnectDelay    timex.Duration `json:"db_connect_delay"`
	FetchTimeout      timex.Duration `json:"fetch_timeout"`
	FetchMaxRedirects int            `json:"fetch_max_redirects"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	S3RootUser        string         `json:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password"`
}

// parseJson overlays values from the JSON file named by -c/-config. Fields
// absent from the file keep their current value. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Port, c.Port)
	setString(&config.NodeEnv, c.NodeEnv)
	setString(&config.DBHost, c.DBHost)
	setInt(&config.DBPort, c.DBPort)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.UploadDir, c.UploadDir)
	setInt(&config.DBConnectAttempts, c.DBConnectAttempts)
	if c.DBConnectDelay.Duration > 0 {
		config.DBConnectDelay = c.DBConnectDelay.Duration
	}
	if c.FetchTimeout.Duration > 0 {
		config.FetchTimeout = c.FetchTimeout.Duration
	}
	setInt(&config.FetchMaxRedirects, c.FetchMaxRedirects)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
