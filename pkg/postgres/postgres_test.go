package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestBuildDSNIncludesTimeZone(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "fundamentals",
		SSLMode:  "disable",
		TimeZone: "Asia/Jakarta",
	}

	dsn := buildDSN(cfg)

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "TimeZone=Asia/Jakarta")
}

func TestBuildDSNOmitsEmptyTimeZone(t *testing.T) {
	dsn := buildDSN(Config{Host: "localhost", Port: 5432})
	assert.NotContains(t, dsn, "TimeZone")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("error"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel(""))
}
