package main

import (
	"flag"
	"log"

	"error-console-api/internal/config"
	"error-console-api/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := server.SetupAndRun(cfg); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
