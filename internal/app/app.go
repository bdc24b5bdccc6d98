package app

import (
	"fmt"
	"strings"

	"tush00nka/group_chat/internal/config"
	"tush00nka/group_chat/internal/handler"
	"tush00nka/group_chat/internal/pkg/logging"
	"tush00nka/group_chat/internal/pkg/pubsub"
	"tush00nka/group_chat/internal/repository"
	"tush00nka/group_chat/internal/service"

	"gorm.io/gorm/logger"
)

const serviceName = "group-chat"

func Run(cfg *config.Config) error {
	log := logging.Init(logging.Config{
		Level:       cfg.LogLevel,
		Pretty:      cfg.LogPretty,
		ServiceName: serviceName,
	})

	dbLogLevel := logger.Warn
	if strings.EqualFold(cfg.LogLevel, "debug") {
		dbLogLevel = logger.Info
	}

	db, err := repository.NewDB(repository.DBConfig{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DSN(),
		MaxIdleConns: cfg.MaxIdleConns,
		MaxOpenConns: cfg.MaxOpenConns,
		LogLevel:     dbLogLevel,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	publisher, err := pubsub.NewPublisher(pubsub.Config{
		Driver: cfg.NotifyDriver,
		Redis: pubsub.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		Kafka: pubsub.KafkaConfig{
			Brokers:        cfg.KafkaBrokers,
			MessageTimeout: cfg.KafkaMessageTimeout,
		},
	})
	if err != nil {
		return err
	}
	defer publisher.Close()
	log.Info().Str("driver", cfg.NotifyDriver).Str("channel", pubsub.Channel).Msg("publisher ready")

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, userRepo, messageRepo)

	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService, publisher)

	server := NewServer(userHandler, chatHandler, log)
	return server.Run(cfg.ServerPort)
}
