// Command benchmark measures lock-request throughput and latency against a
// running HexEarth API. It generates random cells inside a viewport, fires
// concurrent lock requests at the /tile/lock endpoint, and reports how many
// tiles were created, how many collided with existing claims, and the
// latency distribution of the whole run.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/uber/h3-go/v4"
)

const (
	defaultTargetURL   = "http://localhost:8080"
	defaultRequests    = 1000
	defaultConcurrency = 16
	defaultResolution  = 9
	defaultBBox        = "-122.52,37.70,-122.35,37.83"
)

type Config struct {
	TargetURL   string
	Requests    int           // Total number of lock requests to fire
	Concurrency int           // Number of concurrent workers
	Resolution  int           // H3 resolution for generated cells
	BBox        string        // Viewport to draw random cells from
	Timeout     time.Duration // Per-request timeout
	OutputFile  string        // Output markdown file path (optional)
	Debug       bool
}

type boundingBox struct {
	minLon, minLat, maxLon, maxLat float64
}

// RunStats aggregates the outcome of a benchmark run
type RunStats struct {
	mu        sync.Mutex
	Created   int
	Conflicts int
	Rejected  int
	Errors    int
	Latencies []time.Duration
}

func (s *RunStats) record(status int, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Latencies = append(s.Latencies, latency)
	switch {
	case err != nil:
		s.Errors++
	case status == http.StatusCreated:
		s.Created++
	case status == http.StatusConflict:
		s.Conflicts++
	default:
		s.Rejected++
	}
}

func main() {
	cfg := parseFlags()

	box, err := parseBBox(cfg.BBox)
	if err != nil {
		fmt.Printf("Error: invalid bbox: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	fmt.Printf("Target: %s\n", cfg.TargetURL)
	fmt.Printf("Requests: %d, concurrency: %d, resolution: %d\n", cfg.Requests, cfg.Concurrency, cfg.Resolution)
	fmt.Printf("Viewport: %s\n\n", cfg.BBox)

	httpClient := &http.Client{Timeout: cfg.Timeout}
	stats := &RunStats{}
	cells := make(chan string, cfg.Concurrency)

	start := time.Now()

	go func() {
		defer close(cells)
		for i := 0; i < cfg.Requests; i++ {
			select {
			case cells <- randomCell(box, cfg.Resolution):
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for cellID := range cells {
				status, latency, err := lockTile(ctx, httpClient, cfg.TargetURL, cellID, randomAddress())
				stats.record(status, latency, err)
				if cfg.Debug && err != nil {
					fmt.Printf("worker %d: %s: %v\n", worker, cellID, err)
				}
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(start)
	printSummary(stats, elapsed)

	if cfg.OutputFile != "" {
		if err := writeReport(cfg, stats, elapsed); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() Config {
	cfg := Config{}

	// Load defaults from the config file if present
	defaults := &BenchmarkConfig{TargetURL: defaultTargetURL}
	if fileCfg, err := LoadConfig(GetDefaultConfigPath()); err == nil {
		defaults = fileCfg
	}

	flag.StringVar(&cfg.TargetURL, "url", defaults.TargetURL, "HexEarth API base URL")
	flag.IntVar(&cfg.Requests, "requests", defaultRequests, "Total number of lock requests")
	flag.IntVar(&cfg.Concurrency, "concurrency", defaultConcurrency, "Number of concurrent workers")
	flag.IntVar(&cfg.Resolution, "resolution", defaultResolution, "H3 resolution for generated cells")
	flag.StringVar(&cfg.BBox, "bbox", defaultBBox, "Viewport as minLon,minLat,maxLon,maxLat")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Per-request timeout")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug output")
	saveConfig := flag.Bool("save-config", false, "Save the target URL as the default")
	flag.Parse()

	if *saveConfig {
		if err := SaveConfig(GetDefaultConfigPath(), &BenchmarkConfig{TargetURL: cfg.TargetURL}); err != nil {
			fmt.Printf("Warning: failed to save config: %v\n", err)
		}
	}

	return cfg
}

func parseBBox(s string) (boundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return boundingBox{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return boundingBox{}, fmt.Errorf("value %q is not a number", p)
		}
		vals[i] = v
	}

	box := boundingBox{minLon: vals[0], minLat: vals[1], maxLon: vals[2], maxLat: vals[3]}
	if box.minLon >= box.maxLon || box.minLat >= box.maxLat {
		return boundingBox{}, fmt.Errorf("min corner must be south-west of max corner")
	}

	return box, nil
}

// randomCell picks a uniform point inside the viewport and snaps it to a cell
func randomCell(box boundingBox, resolution int) string {
	lat := box.minLat + rand.Float64()*(box.maxLat-box.minLat)
	lon := box.minLon + rand.Float64()*(box.maxLon-box.minLon)
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), resolution)
	return cell.String()
}

const addressAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// randomAddress fabricates a plausible claimant address. The lock endpoint
// never verifies the wallet, so any well-formed value works for load testing.
func randomAddress() string {
	var b strings.Builder
	b.WriteByte('r')
	for i := 0; i < 33; i++ {
		b.WriteByte(addressAlphabet[rand.Intn(len(addressAlphabet))])
	}
	return b.String()
}

func lockTile(ctx context.Context, client *http.Client, baseURL, cellID, claimant string) (int, time.Duration, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"cellId":          cellID,
		"claimantAddress": claimant,
		"gameDate":        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/tile/lock", bytes.NewReader(payload))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, latency, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, latency, nil
}

func printSummary(stats *RunStats, elapsed time.Duration) {
	total := len(stats.Latencies)

	fmt.Printf("Completed %d requests in %s (%s)\n\n", total, formatDuration(elapsed), formatRate(total, elapsed))
	fmt.Printf("  Created:   %d (%s)\n", stats.Created, percentageString(stats.Created, total))
	fmt.Printf("  Conflicts: %d (%s)\n", stats.Conflicts, percentageString(stats.Conflicts, total))
	fmt.Printf("  Rejected:  %d (%s)\n", stats.Rejected, percentageString(stats.Rejected, total))
	fmt.Printf("  Errors:    %d (%s)\n", stats.Errors, percentageString(stats.Errors, total))
	fmt.Println()
	fmt.Printf("  p50: %s\n", formatDuration(percentile(stats.Latencies, 50)))
	fmt.Printf("  p90: %s\n", formatDuration(percentile(stats.Latencies, 90)))
	fmt.Printf("  p99: %s\n", formatDuration(percentile(stats.Latencies, 99)))
}

func writeReport(cfg Config, stats *RunStats, elapsed time.Duration) error {
	total := len(stats.Latencies)

	var b strings.Builder
	b.WriteString("# HexEarth Lock Benchmark\n\n")
	b.WriteString(fmt.Sprintf("- Target: %s\n", cfg.TargetURL))
	b.WriteString(fmt.Sprintf("- Requests: %d\n", total))
	b.WriteString(fmt.Sprintf("- Concurrency: %d\n", cfg.Concurrency))
	b.WriteString(fmt.Sprintf("- Resolution: %d\n", cfg.Resolution))
	b.WriteString(fmt.Sprintf("- Viewport: %s\n", cfg.BBox))
	b.WriteString(fmt.Sprintf("- Duration: %s (%s)\n\n", formatDuration(elapsed), formatRate(total, elapsed)))

	b.WriteString("| Outcome | Count | Share |\n")
	b.WriteString("|---------|-------|-------|\n")
	b.WriteString(fmt.Sprintf("| Created | %d | %s |\n", stats.Created, percentageString(stats.Created, total)))
	b.WriteString(fmt.Sprintf("| Conflicts | %d | %s |\n", stats.Conflicts, percentageString(stats.Conflicts, total)))
	b.WriteString(fmt.Sprintf("| Rejected | %d | %s |\n", stats.Rejected, percentageString(stats.Rejected, total)))
	b.WriteString(fmt.Sprintf("| Errors | %d | %s |\n\n", stats.Errors, percentageString(stats.Errors, total)))

	b.WriteString("| Percentile | Latency |\n")
	b.WriteString("|------------|---------|\n")
	b.WriteString(fmt.Sprintf("| p50 | %s |\n", formatDuration(percentile(stats.Latencies, 50))))
	b.WriteString(fmt.Sprintf("| p90 | %s |\n", formatDuration(percentile(stats.Latencies, 90))))
	b.WriteString(fmt.Sprintf("| p99 | %s |\n", formatDuration(percentile(stats.Latencies, 99))))

	return os.WriteFile(cfg.OutputFile, []byte(b.String()), 0644)
}
