package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasavipoluri/student-registry-api/internal/config"
	"github.com/vasavipoluri/student-registry-api/internal/handler"
	"github.com/vasavipoluri/student-registry-api/internal/repository"
	"github.com/vasavipoluri/student-registry-api/internal/usecase"
	"github.com/vasavipoluri/student-registry-api/shared/auth"
	"github.com/vasavipoluri/student-registry-api/shared/mailer"
	"github.com/vasavipoluri/student-registry-api/shared/registry"
	"github.com/vasavipoluri/student-registry-api/shared/validator"
)

// sessionTTL is the fixed lifetime of an issued session token.
const sessionTTL = 30 * time.Minute

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.NewServerConfig(&logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(startupCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(startupCtx, &logger, db)
	studentRepo := repository.NewStudentMongoRepository(db)
	sequenceRepo := repository.NewSequenceMongoRepository(db)

	mail := mailer.NewMailer(&logger)

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build request validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, sessionTTL)

	authUsecase := usecase.NewAuthUsecase(userRepo, sequenceRepo, jwtAuth)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, mail)
	registrationUsecase := usecase.NewRegistrationUsecase(studentRepo, userRepo)

	h := handler.NewHTTPHandler(&logger, validate, jwtAuth, authUsecase, passwordResetUsecase, registrationUsecase)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cfg.ConsulAddr != "" {
		consul, err := registry.NewConsulRegistry(cfg.ConsulAddr, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to consul")
		}

		if err := consul.Register(cfg.ServiceName, cfg.HTTPAddr); err != nil {
			logger.Fatal().Err(err).Msg("failed to register service with consul")
		}
		defer func() {
			if err := consul.Deregister(); err != nil {
				logger.Error().Err(err).Msg("failed to deregister service from consul")
			}
		}()
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
