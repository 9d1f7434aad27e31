package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
	"github.com/M1XZG/Swindon-Rubbish-Days/resolve"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List every candidate address for a postcode",
	Long:  "Runs the location search without selecting a property, printing each candidate with its UPRN. Useful when the house-number match picks the wrong address.",
	RunE:  runSearch,
}

var (
	searchPostcode string
	searchBaseURL  string
	searchTimeout  time.Duration
)

func init() {
	searchCmd.Flags().StringVarP(&searchPostcode, "postcode", "p", "", "Postcode to search (required)")
	searchCmd.Flags().StringVar(&searchBaseURL, "base-url", "", "iShare endpoint (or SWINDON_BASE_URL)")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", ishare.DefaultTimeout, "HTTP timeout per request")

	if err := searchCmd.MarkFlagRequired("postcode"); err != nil {
		panic(fmt.Sprintf("failed to mark postcode flag as required: %v", err))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := ishare.NewClient(
		ishare.WithBaseURL(baseURL(searchBaseURL)),
		ishare.WithTimeout(searchTimeout),
	)
	resolver := resolve.NewResolver(client, nil)

	addresses, err := resolver.Search(ctx, searchPostcode)
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		return fmt.Errorf("%w for %q", resolve.ErrNoAddresses, searchPostcode)
	}

	fmt.Printf("%d address(es) for %s:\n", len(addresses), searchPostcode)
	for _, addr := range addresses {
		uprn := addr.UPRN
		if uprn == "" {
			uprn = "N/A"
		}
		fmt.Printf("  %-14s %s\n", uprn, addr.Label())
	}
	return nil
}
