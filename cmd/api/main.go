package main

import (
	"io"
	"log"
	"os"

	"github.com/veeplay/veeplay-api/internal/config"
	"github.com/veeplay/veeplay-api/internal/logging"
	"github.com/veeplay/veeplay-api/internal/media"
	miniorepo "github.com/veeplay/veeplay-api/internal/repository/minio"
	"github.com/veeplay/veeplay-api/internal/repository/postgres"
	"github.com/veeplay/veeplay-api/internal/service"
	transporthttp "github.com/veeplay/veeplay-api/internal/transport/http"
	"github.com/veeplay/veeplay-api/internal/transport/mail"
	"github.com/veeplay/veeplay-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect to object storage: %v", err)
	}
	storage := miniorepo.NewMediaStorage(minioClient)

	userRepo := postgres.NewUserRepo(db)
	usedTokenRepo := postgres.NewUsedTokenRepo(db)
	contentRepo := postgres.NewContentRepo(db)
	watchRepo := postgres.NewWatchHistoryRepo(db)

	mailer := mail.NewPasswordResetMailer(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom,
		cfg.FrontendBaseURL,
	)

	sessions := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	resets := util.NewResetTokenManager(cfg.JWTSecret, cfg.PasswordResetTTL)
	processor := media.NewImageProcessor(media.DefaultMaxDimension)

	authService := service.NewAuthService(
		userRepo, usedTokenRepo, storage, mailer, sessions, resets, processor,
		cfg.MinIOBucketProfile, cfg.MediaURLTTL,
	)
	contentService := service.NewContentService(contentRepo, storage, cfg.MinIOBucketMedia, cfg.MediaURLTTL)
	watchService := service.NewWatchService(watchRepo, contentRepo, storage, cfg.MinIOBucketMedia, cfg.MediaURLTTL)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAbout(e)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterAuth(e, authService, watchService, cfg.ProfileImageMaxBytes)
	transporthttp.RegisterContent(e, authService, contentService)
	transporthttp.RegisterWatch(e, authService, watchService)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
