package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-shop-api/internal/app/api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from the environment")
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := api.Run(context.Background(), cfg); err != nil {
		log.Fatalf("shop API exited: %v", err)
	}
}
