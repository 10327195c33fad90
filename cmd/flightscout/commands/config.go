package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"flightscout/internal/collector"
	"flightscout/internal/plan"
	"flightscout/internal/scrapers/gflights"
	"flightscout/lib/configutil"
	configlibsql "flightscout/lib/configutil/libsql"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "flightscout.json5"

type RevealConfig struct {
	StallCycles    int `json:"stall_cycles"`
	PollIntervalMs int `json:"poll_interval_ms"`
	CycleTimeoutMs int `json:"cycle_timeout_ms"`
	MaxCycles      int `json:"max_cycles"`
}

type Config struct {
	// Url is the flight search url whose date is swapped per planned date.
	Url string `json:"url"`

	Dates       []string `json:"dates"`
	RangeStart  string   `json:"range_start"`
	RangeEnd    string   `json:"range_end"`
	TargetDate  string   `json:"target_date"`
	YearOffsets []int    `json:"year_offsets"`

	MaxResults int    `json:"max_results"`
	CsvOutput  string `json:"csv_output"`
	ShowTable  *bool  `json:"show_table"`
	Headless   *bool  `json:"headless"`
	ChromePath string `json:"chrome_path"`

	Attempts           int          `json:"attempts"`
	ListTimeoutSeconds int          `json:"list_timeout_seconds"`
	DateTimeoutSeconds int          `json:"date_timeout_seconds"`
	Reveal             RevealConfig `json:"reveal"`

	Db configlibsql.Struct `json:"db"`
	// DumpDir receives the html snapshot of every date when set.
	DumpDir string `json:"dump_dir"`
}

// loadConfig reads the config file at path, a missing file is only an
// error when the path was asked for explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// configPath resolves which config file to read, the --config flag wins
// over FLIGHTSCOUT_CONFIG.
func configPath(flag string, changed bool) (string, bool) {
	if changed {
		return flag, true
	}
	if env := os.Getenv("FLIGHTSCOUT_CONFIG"); env != "" {
		return env, true
	}
	return defaultConfigFile, false
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func (c Config) planOptions() plan.Options {
	opts := plan.Options{
		ExplicitDates: c.Dates,
		RangeStart:    c.RangeStart,
		RangeEnd:      c.RangeEnd,
		TargetDate:    c.TargetDate,
		YearOffsets:   c.YearOffsets,
	}
	if embedded, ok := gflights.EmbeddedDate(c.Url); ok {
		opts.ReferenceYear = embedded.Year()
	}
	return opts
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (c Config) collectorOptions() collector.Options {
	return collector.Options{
		QueryURL:    c.Url,
		MaxResults:  c.MaxResults,
		Attempts:    c.Attempts,
		ListTimeout: seconds(c.ListTimeoutSeconds),
		DateTimeout: seconds(c.DateTimeoutSeconds),
		Reveal: gflights.RevealOptions{
			StallCycles:  c.Reveal.StallCycles,
			PollInterval: millis(c.Reveal.PollIntervalMs),
			CycleTimeout: millis(c.Reveal.CycleTimeoutMs),
			MaxCycles:    c.Reveal.MaxCycles,
		},
	}
}

func (c Config) validate() error {
	if c.Url == "" {
		return &plan.ConfigError{Reason: "no search url given, use --url or the url config field"}
	}
	if c.MaxResults < 0 {
		return &plan.ConfigError{Reason: fmt.Sprintf("max results must not be negative, got %d", c.MaxResults)}
	}
	return nil
}

type collectFlags struct {
	config      string
	url         string
	dates       string
	rangeStart  string
	rangeEnd    string
	targetDate  string
	yearOffsets string
	maxResults  int
	csvOutput   string
	db          string
	dumpDir     string
	noTable     bool
	headless    bool
}

func (f *collectFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", defaultConfigFile, "The json5 config file to read.")
	flags.StringVar(&f.url, "url", "", "The flight search url to collect from.")
	flags.StringVar(&f.dates, "dates", "", "Comma separated ISO dates to collect.")
	flags.StringVar(&f.rangeStart, "range-start", "", "First ISO date of an inclusive range.")
	flags.StringVar(&f.rangeEnd, "range-end", "", "Last ISO date of an inclusive range.")
	flags.StringVar(&f.targetDate, "target-date", "", "A single date, ISO or as the page shows it (Wed, Oct 8).")
	flags.StringVar(&f.yearOffsets, "year-offsets", "", "Comma separated year offsets applied to --target-date.")
	flags.IntVar(&f.maxResults, "max-results", 0, "Maximum records per date, 0 is unbounded.")
	flags.StringVar(&f.csvOutput, "csv-output", "", "Write the records to this csv file.")
	flags.StringVar(&f.db, "db", "", "Also store the run in this sqlite database.")
	flags.StringVar(&f.dumpDir, "dump-dir", "", "Save the page html of every date into this directory.")
	flags.BoolVar(&f.noTable, "no-table", false, "Do not print the results table.")
	flags.BoolVar(&f.headless, "headless", true, "Run chrome without a window.")
}

// apply overrides cfg with every flag that was set on the command line.
func (f *collectFlags) apply(cmd *cobra.Command, cfg *Config) error {
	changed := cmd.Flags().Changed

	if changed("url") {
		cfg.Url = f.url
	}
	if changed("dates") {
		cfg.Dates = plan.SplitList(f.dates)
	}
	if changed("range-start") {
		cfg.RangeStart = f.rangeStart
	}
	if changed("range-end") {
		cfg.RangeEnd = f.rangeEnd
	}
	if changed("target-date") {
		cfg.TargetDate = f.targetDate
	}
	if changed("year-offsets") {
		offsets, err := plan.ParseOffsets(f.yearOffsets)
		if err != nil {
			return err
		}
		cfg.YearOffsets = offsets
	}
	if changed("max-results") {
		cfg.MaxResults = f.maxResults
	}
	if changed("csv-output") {
		cfg.CsvOutput = f.csvOutput
	}
	if changed("db") {
		cfg.Db = configlibsql.Struct{File: f.db}
	}
	if changed("dump-dir") {
		cfg.DumpDir = f.dumpDir
	}
	if changed("no-table") {
		show := !f.noTable
		cfg.ShowTable = &show
	}
	if changed("headless") {
		headless := f.headless
		cfg.Headless = &headless
	}
	if path := os.Getenv("FLIGHTSCOUT_CHROME_PATH"); path != "" && cfg.ChromePath == "" {
		cfg.ChromePath = path
	}
	return nil
}
