package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ADMIN_PHONE", "0911000000")

	cfg := Load()

	assert.Equal(t, "gopos-api", cfg.App.Name)
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, "0911000000", cfg.Admin.Phone)
	assert.Equal(t, "Super Admin", cfg.Admin.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, 2*time.Second, cfg.Events.PublishTimeout)
	assert.Equal(t, "pos_events", cfg.Events.Exchange)
	assert.Empty(t, cfg.Events.AMQPURL)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
