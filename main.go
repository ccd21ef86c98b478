package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"remindme-service/internal/archive"
	"remindme-service/internal/auth"
	"remindme-service/internal/composer"
	"remindme-service/internal/config"
	"remindme-service/internal/database"
	"remindme-service/internal/email"
	"remindme-service/internal/llm"
	"remindme-service/internal/logger"
	"remindme-service/internal/service"
	"remindme-service/internal/transport/http"
	"remindme-service/internal/upcoming"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "remindme",
	Short:   "ReMindMe relationship reminder API",
	Version: "v" + version,
	// serve is the default action
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)
		log.Info("[DB] schema up to date")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "remindme v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, log.Named("db"))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}

func serve() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "your-secret-key" {
		log.Warn("[AUTH] JWT_SECRET_KEY is the built-in default; set it before exposing the API")
	}

	gen, err := llm.NewFromConfig(cfg, log.Named("llm"))
	if err != nil {
		return err
	}
	log.Info("[LLM] generator ready", zap.String("provider", cfg.LLMProvider), zap.String("model", gen.GetModel()))

	users := service.NewUserService(db, log)
	contacts := service.NewContactService(db, log)
	reminders := service.NewReminderService(db, contacts, log)
	messages := service.NewMessageService(db, contacts,
		composer.NewGenerator(gen, composer.FallbackMode(cfg.MessageFallback), log.Named("composer")),
		log)
	projector := upcoming.NewProjector(reminders, contacts)

	sender := email.NewSender(cfg, log)
	if !sender.Enabled() {
		log.Info("[EMAIL] SMTP not configured; /api/email/send stays a placeholder")
	}

	var archiver archive.Archiver = archive.NopArchiver{}
	if cfg.ArchiveEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3, err := archive.NewS3Archiver(ctx, archive.Config{
			Bucket:          cfg.ArchiveBucket,
			Endpoint:        cfg.ArchiveEndpoint,
			Region:          cfg.ArchiveRegion,
			AccessKeyID:     cfg.ArchiveAccessKeyID,
			SecretAccessKey: cfg.ArchiveSecretAccessKey,
		})
		cancel()
		if err != nil {
			log.Warn("[ARCHIVE] disabled, bucket unreachable", zap.Error(err))
		} else {
			archiver = s3
			log.Info("[ARCHIVE] CSV uploads archived", zap.String("bucket", cfg.ArchiveBucket))
		}
	}

	h := http.NewHandler(http.Deps{
		Users:     users,
		Contacts:  contacts,
		Reminders: reminders,
		Messages:  messages,
		Analytics: service.NewAnalyticsService(contacts, reminders, projector),
		Projector: projector,
		Tokens:    tokens,
		Sender:    sender,
		Archiver:  archiver,
		Log:       log,
	})
	app := http.NewApp(h, http.AppConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      cfg.Env != "production",
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("[SHUTDOWN] graceful shutdown initiated")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("[SHUTDOWN] failed", zap.Error(err))
		}
	}()

	log.Info("[STARTUP] remindme-service listening",
		zap.String("port", cfg.ServerPort),
		zap.String("origins", cfg.AllowedOrigins),
		zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
