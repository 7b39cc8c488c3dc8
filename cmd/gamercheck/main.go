package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/developermasrurhassan/chill-gamer-client/internal/gamerapi"
)

func main() {
	baseURL := os.Getenv("GAMER_API_BASE_URL")
	if baseURL == "" {
		log.Fatal("GAMER_API_BASE_URL is required")
	}

	client := gamerapi.NewClient(baseURL, gamerapi.WithTimeout(8*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	games, err := client.Games(ctx)
	if err != nil {
		log.Printf("/games error: %v", err)
	} else {
		log.Printf("/games ok: %d entries", len(games))
	}

	genres, err := client.Genres(ctx)
	if err != nil {
		log.Printf("/genres error: %v", err)
	} else {
		log.Printf("/genres ok: %v", genres)
	}
}
