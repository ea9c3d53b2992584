package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/phone-validator-service/internal/config"
	"github.com/poofware/phone-validator-service/internal/constants"
	"github.com/poofware/phone-validator-service/internal/repositories"
	"github.com/poofware/phone-validator-service/internal/services"
	"github.com/poofware/phone-validator-service/internal/utils"
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
	Store  repositories.Store

	DispositionService services.DispositionService
}

func NewApp(cfg *config.Config) (*App, error) {
	dbPool, err := connectWithRetry(cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectTimeout)
	defer cancel()
	if err := repositories.EnsureSchema(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	utils.Logger.Info("Database schema ready")

	store := repositories.NewStore(dbPool)
	return &App{
		Config:             cfg,
		DB:                 dbPool,
		Store:              store,
		DispositionService: services.NewDispositionService(cfg, store),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Infof("%s DB connection closed.", a.Config.AppName)
	}
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	backoff := constants.DBConnectInitialBackoff

	for i := 1; ; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DBConnectTimeout)
		dbPool, err := newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Connected to DB on attempt %d", i)
			return dbPool, nil
		}

		if i == constants.DBConnectMaxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", i, err)
		}
		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, constants.DBConnectMaxRetries, backoff,
		)
		time.Sleep(backoff)
		backoff *= 2
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = constants.DBMaxConnIdleTime
	cfg.HealthCheckPeriod = constants.DBHealthCheckPeriod
	return pgxpool.ConnectConfig(ctx, cfg)
}
