package main

import (
	"fmt"

	"github.com/dirscribe/dirscribe/internal/cli"
	"github.com/dirscribe/dirscribe/internal/utils"
)

// main is the entry point for the dirscribe command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("logger initialization failed: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal("application execution failed: " + applicationExecutionError.Error())
	}
}
