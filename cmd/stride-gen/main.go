// Command stride-gen generates synthetic walkathon CSV datasets, either
// writing them to files or posting them straight to a running service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/okian/stride/internal/domain/normalize"
	"github.com/okian/stride/internal/sampledata"
	"github.com/okian/stride/pkg/logger"
)

// Default configuration constants.
const (
	defaultDays        = 14
	defaultMissingRate = 0.05
	defaultSeed        = 42
	defaultTimeout     = 30 * time.Second
)

func main() {
	var (
		format      = flag.String("format", "wide", "Dataset layout: long or wide")
		days        = flag.Int("days", defaultDays, "Number of consecutive days to generate")
		missingRate = flag.Float64("missing", defaultMissingRate, "Fraction of cells left empty")
		seed        = flag.Int64("seed", defaultSeed, "Random seed for reproducible output")
		start       = flag.String("start", "2024-01-01", "First date (YYYY-MM-DD)")
		output      = flag.String("output", "", "Output CSV file (default: stdout)")
		rosterOut   = flag.String("roster", "", "Also write the roster as a YAML config fragment to this file")
		postURL     = flag.String("post", "", "POST the CSV to this service base URL instead of writing a file")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout for -post")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Get()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Error(ctx, "invalid start date", logger.Error(err))
		os.Exit(1)
	}

	gen := sampledata.New(
		sampledata.WithDays(*days),
		sampledata.WithMissingRate(*missingRate),
		sampledata.WithSeed(*seed),
		sampledata.WithStart(startDate),
	)

	var table normalize.Table
	switch *format {
	case "wide":
		table = gen.WideTable()
	case "long":
		table = gen.LongTable()
	default:
		log.Error(ctx, "format must be long or wide", logger.String("format", *format))
		os.Exit(1)
	}

	if *rosterOut != "" {
		if err := writeRoster(gen, *rosterOut); err != nil {
			log.Error(ctx, "failed to write roster", logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "roster written", logger.String("file", *rosterOut))
	}

	if *postURL != "" {
		if err := post(ctx, *postURL, *format, table, *timeout); err != nil {
			log.Error(ctx, "failed to post dataset", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Error(ctx, "failed to create output file", logger.Error(err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := sampledata.WriteCSV(out, table); err != nil {
		log.Error(ctx, "failed to write csv", logger.Error(err))
		os.Exit(1)
	}
	if *output != "" {
		log.Info(ctx, "dataset written",
			logger.String("file", *output),
			logger.Int("rows", len(table.Rows)),
		)
	}
}

func writeRoster(gen *sampledata.Generator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gen.WriteRosterYAML(f)
}

func post(ctx context.Context, baseURL, format string, table normalize.Table, timeout time.Duration) error {
	var buf strings.Builder
	if err := sampledata.WriteCSV(&buf, table); err != nil {
		return err
	}

	url := strings.TrimSuffix(baseURL, "/") + "/datasets?format=" + format
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(buf.String()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	logger.Get().Info(ctx, "dataset posted", logger.String("response", strings.TrimSpace(string(body))))
	return nil
}
