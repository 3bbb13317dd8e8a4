// Package main is the entry point for the Raaz music player.
//
// Raaz is a local music player with clean architecture:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Repository pattern for data persistence
//
// Build:
//
//	go build -o build/raaz ./cmd/raaz
//
// Run:
//
//	./build/raaz [-config path/to/config.toml]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/naddyballia/Raaz-Music/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	opts := app.DefaultOptions()
	opts.ConfigPath = *configPath

	// Create the application with dependency injection
	application, err := app.NewApplication(opts)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer application.Shutdown()

	// Run application (blocks until the window is closed)
	application.Run()
}
