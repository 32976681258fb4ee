package main

import (
	"os"
	"os/signal"

	"github.com/Sanidhya49/binsavvy-cli/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the application.
// It sets up logging based on the DEBUG_BINSAVVY environment variable,
// starts a goroutine to listen for interrupt signals, and executes the main command.
func main() {
	// Logging is off by default so command output stays clean; set
	// DEBUG_BINSAVVY for debug logs on stderr.
	if os.Getenv("DEBUG_BINSAVVY") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	cmd.Execute()
}

// listenForInterrupt exits the program when an interrupt signal arrives.
func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("Interrupt signal received. Exiting...")
}
