package main

import (
	"os"

	"github.com/komalrathore0521/BookVenue/internal/logger"
)

// @title BookVenue API
// @version 1.0
// @description Venue catalogue and booking service.
// @host localhost:8080
// @BasePath /api
func main() {
	logger.Init()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
