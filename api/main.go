// @title Group Chat
// @version 0.1
// @description REST backend for group chats with pub/sub notifications.

// @host localhost:8080
// @BasePath /
// @query.collection.format multi
// @schemes http

package main

import (
	"log"
	"os"

	_ "tush00nka/group_chat/docs"
	"tush00nka/group_chat/internal/app"
	"tush00nka/group_chat/internal/config"
)

func main() {
	envPath := ".env"
	if len(os.Args) > 1 {
		envPath = os.Args[1]
	}

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
