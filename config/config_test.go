package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenTTLDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL())

	cfg.TokenTTLMinutes = 15
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, parseOrigins(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, parseOrigins(" https://a.example , https://b.example ,"))
}

func TestOpenDatabaseSQLiteURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "sqlite://file:configtest?mode=memory&cache=shared"}

	db, err := OpenDatabase(cfg)
	assert.NoError(t, err)

	var one int
	assert.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestLoadConfigSingleton(t *testing.T) {
	first := LoadConfig()
	second := LoadConfig()
	assert.Same(t, first, second)
	assert.Greater(t, first.TokenTTLMinutes, 0)
}
