package cli

import (
	"database/sql"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/database"
	"github.com/automationexercise/shopcheck/internal/handlers"
	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/repository"
	"github.com/automationexercise/shopcheck/internal/services"
)

// OpenAccountStore connects to Postgres when the environment configures it and to the
// SQLite database at serverCfg.SQLitePath otherwise, then runs the migrations
func OpenAccountStore(getenv func(string) string, serverCfg config.ServerConfig, logger *zap.Logger) (*sql.DB, database.Dialect, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		db      *sql.DB
		dialect database.Dialect
		err     error
	)

	if config.PostgresConfigured(getenv) {
		pgCfg, cfgErr := config.LoadPostgresConfig(getenv)
		if cfgErr != nil {
			return nil, "", fmt.Errorf("invalid postgres configuration: %w", cfgErr)
		}
		db, err = database.Connect(pgCfg)
		dialect = database.Postgres
		logger.Info("using postgres account store", zap.String("host", pgCfg.Host), zap.String("db", pgCfg.Database))
	} else {
		db, err = database.OpenSQLite(serverCfg.SQLitePath)
		dialect = database.SQLite
		logger.Info("using sqlite account store", zap.String("path", serverCfg.SQLitePath))
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to run database migrations: %w", err)
	}
	return db, dialect, nil
}

// BuildStorefront wires the storefront services and handlers over an account database
func BuildStorefront(serverCfg config.ServerConfig, db *sql.DB, dialect database.Dialect, logger *zap.Logger) (ServerDependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := handlers.DefaultRenderer()
	if err != nil {
		return ServerDependencies{}, fmt.Errorf("failed to load templates: %w", err)
	}

	sessions := services.NewMemorySessionStore()
	accounts := services.NewAccountService(repository.NewAccountRepository(db, dialect))
	catalog := services.NewCatalogService(models.DefaultProducts())
	carts := services.NewCartService(catalog)

	site := handlers.NewSite(renderer, sessions, accounts, logger)
	catalogHandler := handlers.NewCatalogHandler(site, catalog)
	cartHandler := handlers.NewCartHandler(site, carts)
	accountHandler := handlers.NewAccountHandler(site, accounts, sessions)

	return ServerDependencies{
		ServerConfig: serverCfg,
		Logger:       logger,

		HomeHandler:           http.HandlerFunc(catalogHandler.Home),
		ProductsHandler:       http.HandlerFunc(catalogHandler.Products),
		ProductDetailsHandler: http.HandlerFunc(catalogHandler.ProductDetails),
		ViewCartHandler:       http.HandlerFunc(cartHandler.View),
		AddToCartHandler:      http.HandlerFunc(cartHandler.Add),
		DeleteFromCartHandler: http.HandlerFunc(cartHandler.Delete),
		LoginHandler:          http.HandlerFunc(accountHandler.Login),
		SignupHandler:         http.HandlerFunc(accountHandler.Signup),
		CreateAccountHandler:  http.HandlerFunc(accountHandler.CreateAccount),
		AccountCreatedHandler: http.HandlerFunc(accountHandler.AccountCreated),
		DeleteAccountHandler:  http.HandlerFunc(accountHandler.DeleteAccount),
		LogoutHandler:         http.HandlerFunc(accountHandler.Logout),
	}, nil
}
