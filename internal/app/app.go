// Package app wires the process: infrastructure clients, repositories,
// use cases and the gin engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/config"
	dbpkg "github.com/BruksfildServices01/site-backend/internal/db"
	"github.com/BruksfildServices01/site-backend/internal/handlers"
	infraRepo "github.com/BruksfildServices01/site-backend/internal/infra/repository"
	"github.com/BruksfildServices01/site-backend/internal/media"
	"github.com/BruksfildServices01/site-backend/internal/middleware"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/notify"
	"github.com/BruksfildServices01/site-backend/internal/routes"
	"github.com/BruksfildServices01/site-backend/internal/storage"
	ucAppointment "github.com/BruksfildServices01/site-backend/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/site-backend/internal/usecase/auth"
	ucContact "github.com/BruksfildServices01/site-backend/internal/usecase/contact"
	ucTestimonial "github.com/BruksfildServices01/site-backend/internal/usecase/testimonial"
	ucUser "github.com/BruksfildServices01/site-backend/internal/usecase/user"
)

const avatarMaxSide = 512

type App struct {
	Engine *gin.Engine

	cfg        *config.Config
	log        *slog.Logger
	db         *gorm.DB
	rdb        *redis.Client
	dispatcher *notify.Dispatcher
	mailCloser io.Closer
}

// New connects to every backing service. The caller owns the result and
// must call Close.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("storage: %w", err)
	}

	templates, err := notify.NewTemplates(cfg.Mail.FromName, cfg.Mail.SiteURL)
	if err != nil {
		a.closeDB()
		return nil, err
	}
	sender, closer, err := notify.NewSender(cfg.Mail, log)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("mail transport: %w", err)
	}
	a.mailCloser = closer
	a.dispatcher = notify.NewDispatcher(templates, sender, log, cfg.Mail.QueueSize)

	if cfg.RateLimit.Enabled {
		a.rdb = middleware.NewRedisClient(cfg.Redis, log)
	}

	a.Engine = a.engine(store)
	return a, nil
}

func (a *App) DB() *gorm.DB {
	return a.db
}

func (a *App) engine(store storage.Storage) *gin.Engine {
	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(a.db)
	contactRepo := infraRepo.NewGormRepository[models.Contact](a.db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(a.db)
	testimonialRepo := infraRepo.NewGormRepository[models.Testimonial](a.db)

	auditLogger := audit.New(a.db, a.log)
	uploader := media.NewUploader(media.NewProcessor(avatarMaxSide, 80), store)

	tokens := auth.NewTokenIssuer(a.cfg.JWTSecret, a.cfg.JWTExpire)
	gate := auth.NewGate(tokens, userRepo)

	// ======================================================
	// USE CASES
	// ======================================================
	authSvc := ucAuth.NewService(userRepo, auth.NewHasher(a.cfg.BcryptCost), tokens, auditLogger)
	userSvc := ucUser.NewService(userRepo, uploader, a.log)
	contactSvc := ucContact.NewService(contactRepo, a.dispatcher, auditLogger)
	appointmentSvc := ucAppointment.NewService(appointmentRepo, a.dispatcher, auditLogger)
	testimonialSvc := ucTestimonial.NewService(testimonialRepo, uploader, auditLogger, a.log)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.CORS(a.cfg.AllowedOrigins),
	)

	var counter middleware.Counter
	if a.rdb != nil {
		counter = middleware.NewRedisCounter(a.rdb)
	}

	var uploadsDir string
	if local, ok := store.(*storage.LocalStorage); ok {
		uploadsDir = local.Root()
	}

	var pinger handlers.Pinger
	if sqlDB, err := a.db.DB(); err == nil {
		pinger = sqlDB
	}

	routes.RegisterRoutes(r, routes.Handlers{
		Health:      handlers.NewHealthHandler(pinger),
		Auth:        handlers.NewAuthHandler(authSvc),
		User:        handlers.NewUserHandler(userSvc),
		Contact:     handlers.NewContactHandler(contactSvc),
		Appointment: handlers.NewAppointmentHandler(appointmentSvc),
		Testimonial: handlers.NewTestimonialHandler(testimonialSvc),
		AuditLogs:   handlers.NewAuditLogsHandler(auditLogger),
		Email:       handlers.NewEmailHandler(a.dispatcher, auditLogger),
	}, routes.Options{
		Gate:           gate,
		RateLimit:      middleware.RateLimit(a.cfg.RateLimit, counter, a.log),
		MaxUploadBytes: a.cfg.MaxUploadBytes,
		UploadsDir:     uploadsDir,
	})

	return r
}

// Close drains pending emails, then releases the mail transport, Redis and
// the database, in that order.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.dispatcher != nil {
		if err := a.dispatcher.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain notifications: %w", err))
		}
	}
	if a.mailCloser != nil {
		if err := a.mailCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mail transport: %w", err))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	return dbpkg.Close(a.db)
}
