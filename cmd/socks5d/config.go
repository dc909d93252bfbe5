package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"
)

// Config holds the socks5d settings. Values come from the optional INI file
// first; flags given on the command line win.
type Config struct {
	Listen             string
	NegotiationTimeout time.Duration
	DialTimeout        time.Duration
	ProxyProtocol      bool
	Verbose            bool
}

func parseConfig(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("socks5d", pflag.ContinueOnError)
	fs.SortFlags = false
	configPath := fs.String("config", "", "Optional INI file, keys of its [server] section mirror the flags")
	fs.StringVar(&cfg.Listen, "listen", "127.0.0.1:1080", "SOCKS5 listen address")
	fs.DurationVar(&cfg.NegotiationTimeout, "negotiation-timeout", 10*time.Second, "Timeout for the SOCKS5 handshake, 0 disables")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", 10*time.Second, "Timeout for outbound DNS lookup and TCP connect")
	fs.BoolVar(&cfg.ProxyProtocol, "proxy-protocol", false, "Expect a PROXY protocol header on accepted connections")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable per-connection debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := loadINI(*configPath, fs, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", *configPath, err)
		}
	}

	if cfg.Listen == "" {
		return cfg, errors.New("empty listen address")
	}
	if cfg.NegotiationTimeout < 0 || cfg.DialTimeout < 0 {
		return cfg, errors.New("timeouts must not be negative")
	}
	return cfg, nil
}

// loadINI sets every key present in the [server] section whose flag was not
// given explicitly.
func loadINI(path string, fs *pflag.FlagSet, cfg *Config) error {
	f, err := ini.Load(path)
	if err != nil {
		return err
	}
	sec := f.Section("server")

	if sec.HasKey("listen") && !fs.Changed("listen") {
		cfg.Listen = sec.Key("listen").String()
	}
	if sec.HasKey("negotiation-timeout") && !fs.Changed("negotiation-timeout") {
		if cfg.NegotiationTimeout, err = sec.Key("negotiation-timeout").Duration(); err != nil {
			return fmt.Errorf("negotiation-timeout: %w", err)
		}
	}
	if sec.HasKey("dial-timeout") && !fs.Changed("dial-timeout") {
		if cfg.DialTimeout, err = sec.Key("dial-timeout").Duration(); err != nil {
			return fmt.Errorf("dial-timeout: %w", err)
		}
	}
	if sec.HasKey("proxy-protocol") && !fs.Changed("proxy-protocol") {
		if cfg.ProxyProtocol, err = sec.Key("proxy-protocol").Bool(); err != nil {
			return fmt.Errorf("proxy-protocol: %w", err)
		}
	}
	if sec.HasKey("verbose") && !fs.Changed("verbose") {
		if cfg.Verbose, err = sec.Key("verbose").Bool(); err != nil {
			return fmt.Errorf("verbose: %w", err)
		}
	}
	return nil
}
