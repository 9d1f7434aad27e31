package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/M1XZG/Swindon-Rubbish-Days/ics"
	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
	"github.com/M1XZG/Swindon-Rubbish-Days/model"
	"github.com/M1XZG/Swindon-Rubbish-Days/rawstore"
	"github.com/M1XZG/Swindon-Rubbish-Days/resolve"
	"github.com/M1XZG/Swindon-Rubbish-Days/runlog"
	"github.com/M1XZG/Swindon-Rubbish-Days/schedule"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up collection days for a postcode",
	Long:  "Resolves the postcode (optionally narrowed by house number) to a single property and prints one line per waste stream.",
	RunE:  runLookup,
}

var (
	lookupPostcode    string
	lookupHouseNumber string
	lookupICSPath     string
	lookupCachePath   string
	lookupRawDir      string
	lookupLogDir      string
	lookupBaseURL     string
	lookupTimeout     time.Duration
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	noteStyle    = lipgloss.NewStyle().Faint(true)
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupPostcode, "postcode", "p", "", "Postcode to search, e.g. \"SN1 2JG\" (required)")
	lookupCmd.Flags().StringVarP(&lookupHouseNumber, "house-number", "n", "", "House number to match within the postcode")
	lookupCmd.Flags().StringVar(&lookupICSPath, "ics", "", "Write the dated entries to an iCalendar file")
	lookupCmd.Flags().StringVar(&lookupCachePath, "cache", "", "Path to the address-resolution cache file")
	lookupCmd.Flags().StringVar(&lookupRawDir, "raw-dir", "", "Directory for raw API response capture")
	lookupCmd.Flags().StringVar(&lookupLogDir, "log-dir", "", "Directory for per-lookup records")
	lookupCmd.Flags().StringVar(&lookupBaseURL, "base-url", "", "iShare endpoint (or SWINDON_BASE_URL)")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", ishare.DefaultTimeout, "HTTP timeout per request")

	if err := lookupCmd.MarkFlagRequired("postcode"); err != nil {
		panic(fmt.Sprintf("failed to mark postcode flag as required: %v", err))
	}

	rootCmd.AddCommand(lookupCmd)
}

type lookupResult struct {
	resolution resolve.Resolution
	entries    []model.CollectionEntry
}

func runLookup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()

	opts := []ishare.Option{
		ishare.WithBaseURL(baseURL(lookupBaseURL)),
		ishare.WithTimeout(lookupTimeout),
	}

	var store *rawstore.FileStore
	if lookupRawDir != "" {
		store = rawstore.NewFileStore(lookupRawDir)
		defer store.Close()
		opts = append(opts, ishare.WithCapture(func(service, query string, body []byte) {
			payload := append([]byte(nil), body...)
			if err := store.Append(model.RawResponse{Service: service, Query: query, Payload: payload}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: raw capture failed: %v\n", err)
			}
		}))
	}

	client := ishare.NewClient(opts...)

	cache, err := resolve.LoadCache(lookupCachePath)
	if err != nil {
		return fmt.Errorf("failed to load cache %s: %w", lookupCachePath, err)
	}
	resolver := resolve.NewResolver(client, cache)

	var recorder *runlog.Recorder
	var record *runlog.LookupRecord
	if lookupLogDir != "" {
		recorder = runlog.NewRecorder(lookupLogDir)
		record, err = recorder.Start(lookupPostcode, lookupHouseNumber)
		if err != nil {
			return fmt.Errorf("failed to start lookup record: %w", err)
		}
	}

	result, lookupErr := performLookup(ctx, resolver, client, now)

	if recorder != nil && record != nil {
		if lookupErr == nil {
			record.UPRN = result.resolution.Address.UPRN
			record.Streams = len(result.entries)
		}
		if err := recorder.Finish(record, lookupErr); err != nil {
			fmt.Fprintf(os.Stderr, "warning: lookup record failed: %v\n", err)
		}
	}
	if lookupCachePath != "" {
		if err := resolve.SaveCache(lookupCachePath, cache); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache save failed: %v\n", err)
		}
	}
	if lookupErr != nil {
		return lookupErr
	}

	printLookup(result, now)

	if lookupICSPath != "" {
		if err := writeICS(lookupICSPath, result, now); err != nil {
			return err
		}
		fmt.Printf("Calendar: %s\n", lookupICSPath)
	}
	return nil
}

func performLookup(ctx context.Context, resolver *resolve.Resolver, client *ishare.Client, now time.Time) (lookupResult, error) {
	resolution, err := resolver.Resolve(ctx, lookupPostcode, lookupHouseNumber)
	if err != nil {
		return lookupResult{}, err
	}

	items, err := client.LocalInfo(ctx, ishare.LocalInfoParams{UID: resolution.Address.UPRN})
	if err != nil {
		return lookupResult{}, err
	}

	return lookupResult{
		resolution: resolution,
		entries:    schedule.Entries(items, now),
	}, nil
}

func printLookup(result lookupResult, now time.Time) {
	if note := fallbackNote(lookupHouseNumber, result.resolution); note != "" {
		fmt.Fprintln(os.Stderr, noteStyle.Render(note))
	}
	if result.resolution.Cached {
		fmt.Fprintln(os.Stderr, noteStyle.Render("note: address resolved from cache"))
	}

	fmt.Print(schedule.Format(result.resolution.Address, result.entries))

	if upcoming, ok := schedule.NextCollection(result.entries, now); ok {
		fmt.Printf("%s %s (%s)\n",
			headingStyle.Render("Next collection:"),
			upcoming.Date.Format("2006-01-02"),
			strings.Join(upcoming.Services, ", "))
	}
}

// fallbackNote explains why the first candidate was used when nothing picked
// one deliberately. Empty when the house number matched.
func fallbackNote(houseNumber string, res resolve.Resolution) string {
	if res.Matched {
		return ""
	}
	if houseNumber != "" {
		return fmt.Sprintf("note: house number %q not matched; using first result", houseNumber)
	}
	return "note: no house number given; using first result"
}

func writeICS(path string, result lookupResult, now time.Time) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := ics.Write(file, result.resolution.Address.Label(), result.entries, now); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func baseURL(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return strings.TrimSpace(os.Getenv("SWINDON_BASE_URL"))
}
