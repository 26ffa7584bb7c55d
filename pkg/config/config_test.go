package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "ru", cfg.Report.Locale)
	assert.Equal(t, 120*time.Second, cfg.Scheduler.OrderInterval)
	assert.Equal(t, time.Monday, cfg.Scheduler.WeeklyDay)
	assert.Equal(t, 9, cfg.Scheduler.WeeklyHour)
	assert.False(t, cfg.DB.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 8, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("SCHEDULER_ORDER_INTERVAL", "45")
	v.Set("SCHEDULER_WEEKLY_DAY", "Fri")
	v.Set("WB_TIMEOUT", "5s")
	v.Set("HTTP_PORT", "9090")
	v.Set("REPORT_LOCALE", "en")
	v.Set("DB_HOST", "db")
	v.Set("SECURITY_TOKEN_KEY", "k")
	v.Set("DB_MAX_CONNS", "3")
	v.Set("DB_CONNECT_TIMEOUT", "2s")
	v.Set("DB_FORCE_IPV4", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Scheduler.OrderInterval)
	assert.Equal(t, time.Friday, cfg.Scheduler.WeeklyDay)
	assert.Equal(t, 5*time.Second, cfg.WB.Timeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://postgres:@db:5432/wildberries_bot?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, 3, cfg.DB.MaxConns)
	assert.Equal(t, 2*time.Second, cfg.DB.ConnectTimeout)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"día inválido":      {"SCHEDULER_WEEKLY_DAY": "someday"},
		"hora inválida":     {"SCHEDULER_WEEKLY_HOUR": "25"},
		"storage":           {"REPORT_STORAGE": "ftp"},
		"s3 sin bucket":     {"REPORT_STORAGE": "s3"},
		"db sin llave":      {"DATABASE_URL": "postgres://x"},
		"pool inverso":      {"DB_MIN_CONNS": "5", "DB_MAX_CONNS": "2"},
		"intervalo en cero": {"SCHEDULER_ORDER_INTERVAL": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range env {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}
