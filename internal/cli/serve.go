package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/config"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Logger       *zap.Logger

	HomeHandler           http.Handler
	ProductsHandler       http.Handler
	ProductDetailsHandler http.Handler
	ViewCartHandler       http.Handler
	AddToCartHandler      http.Handler
	DeleteFromCartHandler http.Handler
	LoginHandler          http.Handler
	SignupHandler         http.Handler
	CreateAccountHandler  http.Handler
	AccountCreatedHandler http.Handler
	DeleteAccountHandler  http.Handler
	LogoutHandler         http.Handler
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.logger())
}

// NewMux routes the storefront pages and cart endpoints to their handlers
func NewMux(deps ServerDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", deps.HomeHandler)
	mux.Handle("GET /products", deps.ProductsHandler)
	mux.Handle("GET /product_details/{id}", deps.ProductDetailsHandler)
	mux.Handle("GET /view_cart", deps.ViewCartHandler)
	mux.Handle("POST /add_to_cart/{id}", deps.AddToCartHandler)
	mux.Handle("GET /delete_cart/{id}", deps.DeleteFromCartHandler)
	mux.Handle("GET /login", deps.LoginHandler)
	mux.Handle("POST /signup", deps.SignupHandler)
	mux.Handle("POST /create_account", deps.CreateAccountHandler)
	mux.Handle("GET /account_created", deps.AccountCreatedHandler)
	mux.Handle("GET /delete_account", deps.DeleteAccountHandler)
	mux.Handle("GET /logout", deps.LogoutHandler)
	return mux
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.logger()

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewMux(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel registered with signal.Notify is used.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("shutting down server", zap.Stringer("signal", sig))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown timed out, closing connections", zap.Error(err))
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

func (d ServerDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
