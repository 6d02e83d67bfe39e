package infra

import (
	"fmt"
)

type GcpConfig struct {
	ProjectId string
}

type PgConfig struct {
	ConnectionString    string
	Database            string
	DbConnectWithSocket bool
	Hostname            string
	Password            string
	Port                string
	User                string
	MaxPoolConnections  int
	SslMode             string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	connectionString := fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode)
	if !config.DbConnectWithSocket {
		// Cloud Run reaches the database through a unix socket, the port is only needed elsewhere
		connectionString = fmt.Sprintf("%s port=%s", connectionString, config.Port)
	}
	return connectionString
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	// "gcp" or "otlp"
	Exporter string
	// empty lets the gcp exporter read the project from the metadata server
	ProjectId string
	// per span name sampling ratio, 1 for names not listed
	SamplingMap map[string]float64
}
