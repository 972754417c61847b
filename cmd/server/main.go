package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/checkout"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/email"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/handler"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/middleware"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/router"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/service"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/storage"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/upload"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load() // Load environment config
	if err := logger.Init(cfg.Env != "prod", logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Get().Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	zl := logger.Get()

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	bucket, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if c, ok := bucket.(io.Closer); ok {
		defer c.Close()
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else {
		zl.Warn("redis unavailable; rate limiting and response cache disabled", zap.String("addr", cfg.Redis.Addr))
	}

	// ---- Stores ----
	contacts := repository.NewContactRepo(db)
	submissions := repository.NewFormSubmissionRepo(db)
	files := repository.NewFileUploadRepo(db)
	payments := repository.NewPaymentRepo(db)
	content := repository.NewContentRepo(db)
	diagnostics := repository.NewDiagnosticRepo(db)
	admins := repository.NewAdminRepo(db)

	// ---- Services ----
	sender := email.NewClient(cfg.Email)
	events := service.NewPublisher(cfg.Queue.URL, cfg.Queue.Enabled)
	uploads := upload.NewService(files, bucket, cfg.Upload, cfg.Storage.SignedTTL)
	checkouts := checkout.NewService(checkout.NewStripeSessions(cfg.Stripe.SecretKey), payments, cfg.Stripe.Currency, cfg.SiteURL)

	// ---- Handlers ----
	contactH := handler.NewContactHandler(contacts, events)
	submissionH := handler.NewSubmissionHandler(submissions, diagnostics, events)
	uploadH := handler.NewUploadHandler(uploads, cfg.Upload.MaxFiles)
	checkoutH := handler.NewCheckoutHandler(checkouts, cfg.Stripe.WebhookSecret)

	limit := middleware.NewTokenBucket(cfg.RateLimit, rdb)
	cache := middleware.NewRedisCache(cfg.Cache, rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	router.RegisterRoutes(e, cfg.SiteURL, cfg.RedirectW)
	router.RegisterIntake(e, contactH, submissionH, uploadH, limit, uploadBodyLimit(cfg.Upload))
	router.RegisterPublic(e, handler.NewContentHandler(content), checkoutH, cache)
	router.RegisterFunctions(e, checkoutH, handler.NewNotifyHandler(sender, cfg.SiteURL), limit)
	router.RegisterAdmin(e, handler.NewAuthHandler(admins, cfg.JWTSecret, cfg.AccessTTLMin),
		submissionH, contactH, uploadH, handler.NewPaymentHandler(payments), cfg.JWTSecret, limit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zl.Info("shutting down")
		return e.Shutdown(sctx)
	})
	if cfg.Queue.Enabled {
		consumer := &queue.Consumer{URL: cfg.Queue.URL, Sender: sender, To: cfg.Email.AdminNotify}
		g.Go(func() error {
			if err := consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// uploadBodyLimit fits a full batch of maximum-size files plus form overhead.
func uploadBodyLimit(up config.UploadConfig) string {
	files := up.MaxFiles
	if files < 1 {
		files = 1
	}
	return fmt.Sprintf("%dM", up.MaxSizeInMB*files+1)
}
