package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/roivaz/mcp-salesforce/internal/config"
	"github.com/roivaz/mcp-salesforce/internal/db"
	dbmigrate "github.com/roivaz/mcp-salesforce/internal/db/migrate"
	"github.com/roivaz/mcp-salesforce/internal/logging"
	"github.com/roivaz/mcp-salesforce/internal/mcp/tools"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
	"github.com/roivaz/mcp-salesforce/internal/telemetry"
)

const (
	ServerName    = "mcp-salesforce"
	ServerVersion = "1.0.0"
)

type Config struct {
	Registry   *Registry
	Dispatcher *Dispatcher
	Metrics    *telemetry.Metrics
	// Connector is nil when the dispatcher was built around another source.
	Connector *salesforce.Connector
	// Database backs the audit log; nil disables it.
	Database *db.Database

	EndpointPath   string
	AllowedOrigins []string
	Logger         logging.Logger
}

// DefaultConfig wires the server from the process configuration. The audit
// log is enabled when a Postgres URL is configured and its schema is current.
func DefaultConfig(ctx context.Context) (Config, error) {
	logger := logging.New(logging.LeveledLogger(config.LogLevel()))
	metrics := telemetry.NewMetrics()

	connector := salesforce.NewConnector(salesforce.Config{
		LoginURL:      config.LoginURL(),
		Username:      config.Username(),
		Password:      config.Password(),
		SecurityToken: config.SecurityToken(),
		ClientID:      config.ClientID(),
		ClientSecret:  config.ClientSecret(),
		APIVersion:    config.APIVersion(),
		Timeout:       config.RequestTimeout(),
		Logger:        logger.WithName("salesforce"),
		OnLogin:       metrics.RecordLogin,
	})

	opts := []DispatcherOption{
		WithMetrics(metrics),
		WithLogger(logger.WithName("dispatcher")),
	}

	var database *db.Database
	if dsn := config.PostgresURL(); dsn != "" {
		var err error
		database, err = db.NewDatabase(db.Config{DSN: dsn, Debug: config.DBDebug()})
		if err != nil {
			return Config{}, fmt.Errorf("connect audit database: %w", err)
		}
		if err := database.Ping(ctx, 5*time.Second); err != nil {
			_ = database.Close()
			return Config{}, fmt.Errorf("ping audit database: %w", err)
		}
		if err := dbmigrate.EnsureCurrent(ctx, database.Bun(), db.Migrations(), false); err != nil {
			_ = database.Close()
			return Config{}, fmt.Errorf("audit database: %w", err)
		}
		opts = append(opts, WithAudit(db.NewAuditLog(database, db.WithRetain(config.AuditRetain()))))
		logger.WithName("audit").Info("recording tool invocations", "retain", config.AuditRetain())
	}

	registry := NewRegistry(Catalog())
	dispatcher := NewDispatcher(registry, tools.Handlers(), ConnectorSource{Connector: connector}, opts...)

	return Config{
		Registry:       registry,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Connector:      connector,
		Database:       database,
		EndpointPath:   config.EndpointPath(),
		AllowedOrigins: config.AllowedOrigins(),
		Logger:         logger,
	}, nil
}
