package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcdirect/direct/config"
)

func TestRedactSecrets(t *testing.T) {
	cfg := config.Configuration{
		Server:       config.ServerConfig{Port: "5005", JWTSecret: "s3cret"},
		DataSource:   config.DataSourceConfig{Dns: "postgres://localhost/tcs_catalog"},
		Notification: config.Notification{Slack: config.SlackWebhook{WebhookUrl: "https://hooks.slack.com/services/x"}},
	}

	out := redactSecrets(cfg)
	assert.Equal(t, redacted, out.Server.JWTSecret)
	assert.Equal(t, redacted, out.Notification.Slack.WebhookUrl)
	assert.Equal(t, "5005", out.Server.Port)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)

	empty := redactSecrets(config.Configuration{})
	assert.Empty(t, empty.Server.JWTSecret)
}
