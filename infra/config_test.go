package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgConfig_GetConnectionString(t *testing.T) {
	config := PgConfig{
		Hostname: "localhost",
		User:     "postgres",
		Password: "secret",
		Database: "challenge",
		Port:     "5432",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret database=challenge sslmode=prefer port=5432",
		config.GetConnectionString())

	config.DbConnectWithSocket = true
	config.SslMode = "disable"
	assert.Equal(t,
		"host=localhost user=postgres password=secret database=challenge sslmode=disable",
		config.GetConnectionString())

	config.ConnectionString = "postgres://u:p@db/challenge"
	assert.Equal(t, "postgres://u:p@db/challenge", config.GetConnectionString())
}
