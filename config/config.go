/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT          = "5005"
	DEFAULT_LIMIT         = 50
	DEFAULT_LOOKUP_TTL    = 300
	DEFAULT_MAX_DATE      = "9999-12-31T23:59:59Z"
	DEFAULT_CONNECT_TRIES = 5
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"DIRECT_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"DIRECT_SERVER_SECURE"`
	JWTSecret string `json:"jwt_secret" envconfig:"DIRECT_SERVER_JWT_SECRET"`
	Domain    string `json:"domain" envconfig:"DIRECT_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"DIRECT_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"DIRECT_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns          string `json:"dns" envconfig:"DIRECT_DATA_SOURCE_DNS"`
	MaxOpenConns int    `json:"max_open_conns" envconfig:"DIRECT_DATA_SOURCE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `json:"max_idle_conns" envconfig:"DIRECT_DATA_SOURCE_MAX_IDLE_CONNS"`
	ConnectTries int    `json:"connect_tries" envconfig:"DIRECT_DATA_SOURCE_CONNECT_TRIES"`
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"DIRECT_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"DIRECT_REDIS_SKIP_TLS_VERIFY"`
}

type LookupCacheConfig struct {
	Enabled bool `json:"enabled" envconfig:"DIRECT_LOOKUP_CACHE_ENABLED"`
	TTLSec  int  `json:"ttl_sec" envconfig:"DIRECT_LOOKUP_CACHE_TTL_SEC"`
}

// TTL returns the lookup cache entry lifetime.
func (l LookupCacheConfig) TTL() time.Duration {
	return time.Duration(l.TTLSec) * time.Second
}

type QueryConfig struct {
	DefaultLimit int    `json:"default_limit" envconfig:"DIRECT_QUERY_DEFAULT_LIMIT"`
	MaxDate      string `json:"max_date" envconfig:"DIRECT_QUERY_MAX_DATE"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"DIRECT_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"DIRECT_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"DIRECT_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"DIRECT_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName     string            `json:"project_name" envconfig:"DIRECT_PROJECT_NAME"`
	Server          ServerConfig      `json:"server"`
	DataSource      DataSourceConfig  `json:"data_source"`
	Redis           RedisConfig       `json:"redis"`
	LookupCache     LookupCacheConfig `json:"lookup_cache"`
	Query           QueryConfig       `json:"query"`
	Notification    Notification      `json:"notification"`
	RateLimit       RateLimitConfig   `json:"rate_limit"`
	EnableTelemetry bool              `json:"enable_telemetry" envconfig:"DIRECT_ENABLE_TELEMETRY"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("direct", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called direct.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		cnf.ProjectName = "Direct API"
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)
	cnf.Query.MaxDate = strings.TrimSpace(cnf.Query.MaxDate)

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.LookupCache.Enabled && cnf.Redis.Dns == "" {
		log.Println("Error: Redis DNS is empty. It's required when the lookup cache is enabled.")
		return errors.New("redis DNS is required when lookup cache is enabled")
	}

	if cnf.Server.Secure && cnf.Server.JWTSecret == "" {
		return errors.New("jwt secret is required when secure mode is enabled")
	}

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.DataSource.ConnectTries <= 0 {
		cnf.DataSource.ConnectTries = DEFAULT_CONNECT_TRIES
	}

	if cnf.LookupCache.TTLSec <= 0 {
		cnf.LookupCache.TTLSec = DEFAULT_LOOKUP_TTL
	}

	if cnf.Query.DefaultLimit == 0 {
		cnf.Query.DefaultLimit = DEFAULT_LIMIT
	}
	if cnf.Query.DefaultLimit < -1 {
		return errors.New("query default limit must be positive or -1")
	}

	if cnf.Query.MaxDate == "" {
		cnf.Query.MaxDate = DEFAULT_MAX_DATE
	}
	if _, err := time.Parse(time.RFC3339, cnf.Query.MaxDate); err != nil {
		return errors.New("query max date must be an RFC3339 timestamp")
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
