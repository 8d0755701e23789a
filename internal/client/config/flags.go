package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/dessertai/internal/flagx"
)

// parseFlags overlays cfg with -a, -s, -i and -l. Other arguments (such as
// -c, handled by parseJSON) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("dessertai", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the recipe API")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local store")
	interval := fs.Int("i", int(cfg.SessionCheckInterval/time.Second), "session check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.Filter(args, "-a", "-s", "-i", "-l")); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.SessionCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
