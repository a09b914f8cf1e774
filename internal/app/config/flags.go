package config

import (
	"flag"
	"os"
	"time"

	"github.com/ifpr-pinhais/campusconnect/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   account backend: local or remote
//	-d string   path to the sqlite database file
//	-r string   base URL of the remote identity service
//	-t int      remote request timeout in seconds
//	-l string   log level: debug, info, warn, error
//	-p          pretty (console) log output
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so the config-file flag handled elsewhere does
// not interfere.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-r", "-t", "-l", "-p"})

	fs := flag.NewFlagSet("campusconnect", flag.ContinueOnError)

	backend := fs.String("b", string(cfg.Backend), "account backend (local or remote)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the sqlite database file")
	fs.StringVar(&cfg.Remote.BaseURL, "r", cfg.Remote.BaseURL, "base URL of the remote identity service")
	timeout := fs.Int("t", int(cfg.Remote.Timeout.Seconds()), "remote request timeout (in seconds)")
	fs.StringVar(&cfg.Log.Level, "l", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Log.Pretty, "p", cfg.Log.Pretty, "pretty log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Backend = Backend(*backend)
	cfg.Remote.Timeout = time.Duration(*timeout) * time.Second
	return nil
}
