package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/adapters/event"
	httpAdapter "github.com/khoahotran/campus-connect/adapters/http"
	"github.com/khoahotran/campus-connect/adapters/media_storage"
	"github.com/khoahotran/campus-connect/adapters/persistence"
	"github.com/khoahotran/campus-connect/adapters/realtime"
	authUC "github.com/khoahotran/campus-connect/internal/application/usecase/auth"
	campusUC "github.com/khoahotran/campus-connect/internal/application/usecase/campuschat"
	dmUC "github.com/khoahotran/campus-connect/internal/application/usecase/directmessage"
	directoryUC "github.com/khoahotran/campus-connect/internal/application/usecase/directory"
	liveUC "github.com/khoahotran/campus-connect/internal/application/usecase/livefeed"
	profileUC "github.com/khoahotran/campus-connect/internal/application/usecase/profile"
	"github.com/khoahotran/campus-connect/internal/config"
	"github.com/khoahotran/campus-connect/pkg/auth"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/tracing"
	"github.com/khoahotran/campus-connect/pkg/validation"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Campus Connect API server...")

	shutdownTracing, err := tracing.Init(cfg, appLogger, "campus-connect-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize uploader", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	achievementRepo := persistence.NewPostgresAchievementRepo(dbPool, appLogger)
	connectionRepo := persistence.NewPostgresConnectionRepo(dbPool, appLogger)
	campusRepo := persistence.NewPostgresCampusMessageRepo(dbPool, appLogger)
	directRepo := persistence.NewPostgresDirectMessageRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	sessionStore := persistence.NewRedisSessionStore(redisClient)
	changeFeed := realtime.NewRedisFeed(redisClient, appLogger)
	validator := validation.New()

	// Use Cases
	signUpUseCase := authUC.NewSignUpUseCase(userRepo, jwtSvc, validator, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, validator, appLogger)
	sessionUseCase := authUC.NewSessionUseCase(jwtSvc, sessionStore, profileRepo, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, skillRepo, achievementRepo, validator, appLogger)
	directoryUseCase := directoryUC.NewDirectoryUseCase(profileRepo, connectionRepo, appLogger)
	campusChatUseCase := campusUC.NewCampusChatUseCase(campusRepo, profileRepo, changeFeed, appLogger)
	directMessageUseCase := dmUC.NewDirectMessageUseCase(
		directRepo, connectionRepo, profileRepo,
		uploader, changeFeed, kafkaClient,
		cfg.Cloudinary.Folder, appLogger,
	)
	liveFeedUseCase := liveUC.NewLiveFeedUseCase(campusRepo, directRepo, profileRepo, changeFeed, appLogger)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:          httpAdapter.NewAuthHandler(signUpUseCase, loginUseCase, sessionUseCase, appLogger),
		Profile:       httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Directory:     httpAdapter.NewDirectoryHandler(directoryUseCase),
		Chat:          httpAdapter.NewChatHandler(campusChatUseCase, liveFeedUseCase, appLogger),
		DirectMessage: httpAdapter.NewDirectMessageHandler(directMessageUseCase, liveFeedUseCase, appLogger),
	}, httpAdapter.AuthMiddleware(sessionUseCase, appLogger), appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live streams hang off ctx so they end on shutdown.
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", err)
	}
}
