package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fraudcheck/config"
	fhttp "fraudcheck/http"
)

func TestServerConfigDefaults(t *testing.T) {
	assert.Equal(t, fhttp.DefaultServerConfig(), serverConfig(&config.Config{}))
}

func TestServerConfigOverrides(t *testing.T) {
	var cfg config.Config
	cfg.Http.Port = 9000
	cfg.Http.Timeout = 5 * time.Second
	cfg.Http.AllowedOrigins = []string{"https://bank.example"}

	sc := serverConfig(&cfg)
	assert.Equal(t, 9000, sc.Port)
	assert.Equal(t, 5*time.Second, sc.Timeout)
	assert.Equal(t, []string{"https://bank.example"}, sc.AllowedOrigins)
}
