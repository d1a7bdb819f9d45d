package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartapp "github.com/dwikikusuma/marketplace/internal/cart/app"
	carthttp "github.com/dwikikusuma/marketplace/internal/cart/httpapi"
	cartpg "github.com/dwikikusuma/marketplace/internal/cart/infra/postgres"

	checkoutapp "github.com/dwikikusuma/marketplace/internal/checkout/app"
	checkouthttp "github.com/dwikikusuma/marketplace/internal/checkout/httpapi"
	checkoutadapter "github.com/dwikikusuma/marketplace/internal/checkout/infra/adapter"
	checkoutmail "github.com/dwikikusuma/marketplace/internal/checkout/infra/sendgrid"

	commentapp "github.com/dwikikusuma/marketplace/internal/comment/app"
	commenthttp "github.com/dwikikusuma/marketplace/internal/comment/httpapi"
	commentpg "github.com/dwikikusuma/marketplace/internal/comment/infra/postgres"

	identityapp "github.com/dwikikusuma/marketplace/internal/identity/app"
	identityhttp "github.com/dwikikusuma/marketplace/internal/identity/httpapi"
	"github.com/dwikikusuma/marketplace/internal/identity/infra/jwt"

	listingapp "github.com/dwikikusuma/marketplace/internal/listing/app"
	listinghttp "github.com/dwikikusuma/marketplace/internal/listing/httpapi"
	listingpg "github.com/dwikikusuma/marketplace/internal/listing/infra/postgres"

	mediaapp "github.com/dwikikusuma/marketplace/internal/media/app"
	mediahttp "github.com/dwikikusuma/marketplace/internal/media/httpapi"
	"github.com/dwikikusuma/marketplace/internal/media/infra/gcs"
	"github.com/dwikikusuma/marketplace/internal/media/infra/local"

	orderapp "github.com/dwikikusuma/marketplace/internal/order/app"
	orderhttp "github.com/dwikikusuma/marketplace/internal/order/httpapi"
	orderpg "github.com/dwikikusuma/marketplace/internal/order/infra/postgres"

	reportapp "github.com/dwikikusuma/marketplace/internal/report/app"
	reporthttp "github.com/dwikikusuma/marketplace/internal/report/httpapi"
	reportpg "github.com/dwikikusuma/marketplace/internal/report/infra/postgres"

	userapp "github.com/dwikikusuma/marketplace/internal/user/app"
	userhttp "github.com/dwikikusuma/marketplace/internal/user/httpapi"
	"github.com/dwikikusuma/marketplace/internal/user/infra/bcrypt"
	userpg "github.com/dwikikusuma/marketplace/internal/user/infra/postgres"

	wishlistapp "github.com/dwikikusuma/marketplace/internal/wishlist/app"
	wishlisthttp "github.com/dwikikusuma/marketplace/internal/wishlist/httpapi"
	wishlistpg "github.com/dwikikusuma/marketplace/internal/wishlist/infra/postgres"

	"github.com/dwikikusuma/marketplace/pkg/config"
	"github.com/dwikikusuma/marketplace/pkg/logger"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
	"github.com/dwikikusuma/marketplace/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(ctx, log, cfg.Postgres)
	defer db.Close()

	tokens, err := jwt.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Error("jwt setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	blobs, closeBlobs := mustBlobStore(ctx, log, cfg)
	defer closeBlobs()

	// Users
	userSvc := userapp.NewService(userpg.NewUserRepo(db), bcrypt.NewHasher(0), tokens)
	guard := identityapp.NewGuard(tokens, userSvc)

	// Listings and their satellites
	listingSvc := listingapp.NewService(listingpg.NewListingRepo(db))
	commentSvc := commentapp.NewService(commentpg.NewCommentRepo(db))
	wishlistSvc := wishlistapp.NewService(wishlistpg.NewWishlistRepo(db))
	reportSvc := reportapp.NewService(reportpg.NewReportRepo(db))
	mediaSvc := mediaapp.NewService(blobs, cfg.MediaMaxBytes)

	// Cart and orders
	cartSvc := cartapp.NewService(cartpg.NewCartRepo(db))
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db))

	// Checkout (adapters)
	notifier := checkoutmail.NewNotifier(cfg.SendGridAPIKey, cfg.MailFrom, userSvc, log)
	if !notifier.Enabled() {
		log.Info("order confirmation mail disabled (SENDGRID_API_KEY empty)")
	}
	checkoutSvc := checkoutapp.NewService(
		postgres.NewTxManager(db),
		checkoutadapter.NewCartStore(cartSvc),
		checkoutadapter.NewOrderWriter(orderSvc),
		notifier,
		cfg.ShippingCost,
	)

	router := newRouter(routerDeps{
		log:         log,
		db:          db,
		corsOrigins: cfg.CORSAllowedOrigins,
		auth:        identityhttp.RequireIdentity(guard),
		handlers: []routeSet{
			userhttp.NewHandler(userSvc),
			listinghttp.NewHandler(listingSvc),
			commenthttp.NewHandler(commentSvc),
			wishlisthttp.NewHandler(wishlistSvc),
			reporthttp.NewHandler(reportSvc),
			mediahttp.NewHandler(mediaSvc),
			carthttp.NewHandler(cartSvc),
			checkouthttp.NewHandler(checkoutSvc),
			orderhttp.NewHandler(orderSvc),
		},
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("http starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Warn("http shutdown", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
	}
	log.Info("bye")
}

func mustDB(ctx context.Context, log *slog.Logger, cfg config.Postgres) *sql.DB {
	db, err := postgres.Open(postgres.Config{
		URL:             cfg.URL,
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Pass:            cfg.Pass,
		DB:              cfg.DB,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("db migrate failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("db migrated")
	}
	return db
}

func mustBlobStore(ctx context.Context, log *slog.Logger, cfg config.Config) (mediaapp.BlobStore, func()) {
	if cfg.MediaGCSBucket != "" {
		store, err := gcs.NewStore(ctx, cfg.MediaGCSBucket, cfg.GCPCredentials)
		if err != nil {
			log.Error("gcs setup failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("media stored in gcs", slog.String("bucket", cfg.MediaGCSBucket))
		return store, func() { _ = store.Close() }
	}

	store, err := local.NewStore(cfg.MediaDir)
	if err != nil {
		log.Error("media dir setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("media stored on disk", slog.String("dir", cfg.MediaDir))
	return store, func() {}
}
