package database

import (
	"testing"

	"recruit-api/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5433, User: "app", Password: "p@ss word", Name: "recruit"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5433/recruit?sslmode=disable", DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}
