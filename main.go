// main.go
package main

import (
	"fmt"
	"log"

	"phone-auth/cmd"
	"phone-auth/internal/data/repository"
	"phone-auth/internal/wire"
	"phone-auth/pkg/database"
	"phone-auth/pkg/notify"
	"phone-auth/pkg/otpgen"
	"phone-auth/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply schema migrations
	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema up to date")
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// OTP generator policy from config
	generator := otpgen.NewGenerator(otpgen.Policy{
		Length:             config.OTP.Length,
		Digits:             config.OTP.Digits,
		UpperCaseAlphabets: config.OTP.UpperCaseAlphabets,
		LowerCaseAlphabets: config.OTP.LowerCaseAlphabets,
		SpecialChars:       config.OTP.SpecialChars,
	})

	// OTP delivery driver
	notifier, cleanup, err := buildNotifier(config, logger)
	if err != nil {
		logger.Fatal("Failed to init notifier", zap.Error(err))
	}
	defer cleanup()

	// Wire all dependencies
	app, err := wire.Wiring(repos, generator, notifier, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

// buildNotifier picks the delivery driver from config. The returned cleanup
// closes driver connections on shutdown.
func buildNotifier(config *utils.Config, logger *zap.Logger) (notify.Notifier, func(), error) {
	switch config.Notify.Driver {
	case "nats":
		n, err := notify.NewNATSNotifier(config.Notify.NATSUrl, config.Notify.NATSSubject, logger)
		if err != nil {
			return nil, nil, err
		}
		return n, n.Close, nil
	case "log":
		return notify.NewLogNotifier(logger), func() {}, nil
	case "none":
		return notify.NewNoopNotifier(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notify driver %q", config.Notify.Driver)
	}
}
