package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/campuslab/equiptrack/internal/config"
	"github.com/campuslab/equiptrack/internal/db"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/campuslab/equiptrack/internal/scheduler"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	maintenance := &scheduler.Maintenance{
		Logs:          repo.NewLogRepo(database),
		Tickets:       repo.NewTicketRepo(database),
		RetentionDays: cfg.LogRetentionDays,
		StaleHours:    cfg.TicketStaleHours,
	}
	if err := maintenance.Start(); err != nil {
		slog.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer maintenance.Stop()

	router := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("listening with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("listening", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
