package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/msomdec/folio-cms/internal/config"
	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/handler"
	"github.com/msomdec/folio-cms/internal/repository/disk"
	"github.com/msomdec/folio-cms/internal/repository/mongodb"
	"github.com/msomdec/folio-cms/internal/repository/sqlite"
	"github.com/msomdec/folio-cms/internal/service"
)

// repositories is what main needs from a storage backend.
type repositories struct {
	db           domain.Database
	users        domain.UserRepository
	blogs        domain.BlogRepository
	services     domain.ServiceRepository
	testimonials domain.TestimonialRepository
	blobs        domain.FileStore // nil unless the backend can hold files
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	ctx := context.Background()

	repos, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer repos.db.Close()

	if err := repos.db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "driver", cfg.DatabaseDriver)

	files, err := openFileStore(cfg, repos)
	if err != nil {
		slog.Error("failed to open file store", "error", err)
		os.Exit(1)
	}

	images := service.NewImageStore(files, cfg.APIURL, cfg.MaxUploadBytes)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	loginLimiter := service.NewTokenBucket(cfg.LoginRate, float64(cfg.LoginBurst))
	defer loginLimiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         service.NewAuthService(repos.users, hasher, tokens, images),
		Users:        service.NewUserService(repos.users, hasher, images),
		Blogs:        service.NewBlogService(repos.blogs, repos.users, images),
		Offerings:    service.NewOfferingService(repos.services, images),
		Testimonials: service.NewTestimonialService(repos.testimonials, images),
		Images:       images,
	}, handler.RouteOptions{
		MaxUploadBytes: cfg.MaxUploadBytes,
		LoginLimiter:   loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.FailFast(os.Exit, handler.LogRequests(handler.SecurityHeaders(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "api_url", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCtx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openStorage(ctx context.Context, cfg config.Config) (*repositories, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &repositories{
			db:           db,
			users:        db.Users(),
			blogs:        db.Blogs(),
			services:     db.Services(),
			testimonials: db.Testimonials(),
		}, nil
	default:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return &repositories{
			db:           db,
			users:        db.Users(),
			blogs:        db.Blogs(),
			services:     db.Services(),
			testimonials: db.Testimonials(),
			blobs:        db.FileStore(),
		}, nil
	}
}

func openFileStore(cfg config.Config, repos *repositories) (domain.FileStore, error) {
	if cfg.FileStore == config.FileStoreSQLite && repos.blobs != nil {
		slog.Info("storing images in the database")
		return repos.blobs, nil
	}
	dir := filepath.Join(cfg.PublicDir, "images")
	slog.Info("storing images on disk", "dir", dir)
	return disk.New(dir)
}
