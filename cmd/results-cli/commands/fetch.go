package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"evision-results/internal/components/configutil"
	"evision-results/internal/components/telemetry"
	"evision-results/internal/results"
	"evision-results/internal/scrapers/evision"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

var (
	fetchConfig   *string
	fetchUsername *string
	fetchPassword *string
	fetchBaseUrl  *string
	fetchOut      *string
	fetchDumpHttp *string
)

func init() {
	fetchConfig = fetchCmd.Flags().String("config", "config.json5", "The config file to read credentials from.")
	fetchUsername = fetchCmd.Flags().String("username", "", "Overrides the username in the config.")
	fetchPassword = fetchCmd.Flags().String("password", "", "Overrides the password in the config.")
	fetchBaseUrl = fetchCmd.Flags().String("base-url", "", "Overrides the e:Vision base url in the config.")
	fetchOut = fetchCmd.Flags().String("out", "", "Also write the downloaded results page to this file.")
	fetchDumpHttp = fetchCmd.Flags().String("dump-http", "", "Write every request and response made to this directory.")
	rootCmd.AddCommand(fetchCmd)
}

func loadFetchConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](*fetchConfig)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	err = configutil.Override(&cfg, Config{
		BaseUrl:  *fetchBaseUrl,
		Username: *fetchUsername,
		Password: *fetchPassword,
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.Username == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf("a username and password are required, set them in %s or with flags", *fetchConfig)
	}
	return cfg, nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--config <path/to/config.json5>] [--out <path/to/page.html>] [--dump-http <dir>]",
	Short: "Logs into e:Vision and prints your results.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFetchConfig()
		if err != nil {
			return err
		}

		opts := evision.ClientOptions{
			BaseUrl:           cfg.BaseUrl,
			Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}
		if *fetchDumpHttp != "" {
			out, err := telemetry.NewFilesystemOutput(*fetchDumpHttp)
			if err != nil {
				return fmt.Errorf("create dump directory: %w", err)
			}
			opts.Dump = out
		}

		client, err := evision.NewClient(opts, telemetry.SlogAPI{})
		if err != nil {
			return err
		}

		slog.Info("fetching results", "username", cfg.Username)
		t1 := time.Now()
		defer func() {
			slog.Debug("fetch time", "seconds", time.Since(t1).Seconds())
		}()

		if *fetchOut == "" {
			rs, err := evision.Fetch(cmd.Context(), client, cfg.Username, cfg.Password)
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), rs)
		}

		page, err := evision.Page(cmd.Context(), client, cfg.Username, cfg.Password)
		if err != nil {
			return err
		}
		err = os.WriteFile(*fetchOut, []byte(page), 0600)
		if err != nil {
			return fmt.Errorf("write results page: %w", err)
		}
		rs, err := results.Extract(page)
		if err != nil {
			return err
		}
		return writeResults(cmd.OutOrStdout(), rs)
	},
}
