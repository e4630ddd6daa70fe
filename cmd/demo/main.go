package main

import (
	"log"
	"os"

	"github.com/nerith-games/vigna/ecsconfig"
	"github.com/nerith-games/vigna/internal/demo"
)

func main() {
	cfg := ecsconfig.Default()
	if path := os.Getenv("VIGNA_DEMO_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		cfg, err = ecsconfig.Load(data)
		if err != nil {
			log.Fatal(err)
		}
	}

	game := demo.NewGame(cfg, 24)
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
