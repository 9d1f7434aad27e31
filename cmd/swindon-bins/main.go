// Package main provides the swindon-bins CLI for looking up waste-collection
// days from the Swindon council iShare service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swindon-bins",
	Short: "Swindon rubbish and recycling collection lookup",
	Long:  "swindon-bins resolves a postcode to a property (UPRN) via the council's iShare API and prints that property's waste-collection schedule.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
