package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/config"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	connectAttempts = 5
	connectTimeout  = 5 * time.Second
	firstBackoff    = 500 * time.Millisecond
)

// App owns the process-wide resources: config and the Postgres pool.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
}

// NewApp connects to the society database and makes sure the activity tables
// exist. A database that stays unreachable after the backoff is fatal to the
// caller.
func NewApp(cfg *config.Config) (*App, error) {
	dbURL, err := databaseURL(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := connectWithBackoff(cfg.AppName, dbURL, connectAttempts, firstBackoff)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &App{Config: cfg, DB: pool}, nil
}

func (a *App) Close() {
	if a.DB == nil {
		return
	}
	a.DB.Close()
	utils.Logger.Infof("%s closed its database pool", a.Config.AppName)
}

// databaseURL points CI runs at their per-run role when isolated schemas are
// on.
func databaseURL(cfg *config.Config) (string, error) {
	if !cfg.LDFlag_UsingIsolatedSchema {
		return cfg.DBUrl, nil
	}
	u, err := utils.WithIsolatedRole(cfg.DBUrl, cfg.UniqueRunnerID, cfg.UniqueRunNumber)
	if err != nil {
		return "", err
	}
	utils.Logger.WithField("role", utils.IsolatedRoleName(cfg.UniqueRunnerID, cfg.UniqueRunNumber)).
		Info("Connecting with isolated schema role")
	return u, nil
}

func connectWithBackoff(appName, dbURL string, attempts int, backoff time.Duration) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	poolCfg.MaxConnIdleTime = 2 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
		cancel()
		if err == nil {
			utils.Logger.Infof("%s connected to the society database (attempt %d)", appName, attempt)
			return pool, nil
		}
		if attempt == attempts {
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
		}
		utils.Logger.WithError(err).WithField("attempt", attempt).
			Warnf("Database not reachable; retrying in %v", backoff)
		time.Sleep(backoff)
		backoff *= 2
	}
}
