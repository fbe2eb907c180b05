package main

import (
	"flag"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zeebo/errs"
)

type config struct {
	Input   string
	Strict  bool
	Dump    bool
	Audit   int
	Monitor string
	Verbose bool
}

func defaultConfig() config {
	return config{Input: "input.txt"}
}

type fileConfig struct {
	Input   string `toml:"input"`
	Strict  bool   `toml:"strict"`
	Dump    bool   `toml:"dump"`
	Audit   int    `toml:"audit"`
	Monitor string `toml:"monitor"`
	Verbose bool   `toml:"verbose"`
}

// loadConfigFile overlays the keys present in the TOML file at path onto cfg.
func loadConfigFile(path string, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return errs.Wrap(err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return errs.New("%s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("dump") {
		cfg.Dump = raw.Dump
	}
	if meta.IsDefined("audit") {
		cfg.Audit = raw.Audit
	}
	if meta.IsDefined("monitor") {
		cfg.Monitor = strings.TrimSpace(raw.Monitor)
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return nil
}

// parseConfig builds the configuration from defaults, then the file named by
// -config, then any flags given explicitly on the command line.
func parseConfig(name string, args []string) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "optional TOML config file")
		input      = fs.String("input", cfg.Input, "file holding the hex transmission, or - for stdin")
		strict     = fs.Bool("strict", false, "reject non-zero or whole-digit padding after the root packet")
		dump       = fs.Bool("dump", false, "print the decoded packet tree")
		audit      = fs.Int("audit", 0, "decode this many random transmissions and report outcomes")
		monitor    = fs.String("monitor", "", "address to serve timing stats on, e.g. :8080")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, errs.Wrap(err)
	}

	if *configPath != "" {
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "strict":
			cfg.Strict = *strict
		case "dump":
			cfg.Dump = *dump
		case "audit":
			cfg.Audit = *audit
		case "monitor":
			cfg.Monitor = *monitor
		case "v":
			cfg.Verbose = *verbose
		}
	})

	if cfg.Audit < 0 {
		return config{}, errs.New("audit count must not be negative: %d", cfg.Audit)
	}
	return cfg, nil
}
