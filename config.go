package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/riddlebox/palette"
)

type Config struct {
	bind              string
	contrastAlgorithm string
	contrastAttempts  int
	oracleTimeout     time.Duration
	oracleURL         string
	port              int
	prefix            string
	profile           bool
	sessionTimeout    time.Duration
	tlsCert           string
	tlsKey            string
	verbose           bool
	version           bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if _, err := palette.ParseAlgorithm(c.contrastAlgorithm); err != nil {
		return fmt.Errorf("invalid contrast algorithm (must be apca or wcag21): %q", c.contrastAlgorithm)
	}
	if c.contrastAttempts < 1 {
		return fmt.Errorf("invalid contrast attempts (must be at least 1): %d", c.contrastAttempts)
	}
	if c.oracleTimeout <= 0 {
		return fmt.Errorf("invalid oracle timeout (must be positive): %s", c.oracleTimeout)
	}
	if c.oracleURL != "" {
		u, err := url.Parse(c.oracleURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid oracle url (must be an absolute http or https url): %q", c.oracleURL)
		}
	}
	return nil
}

// randomPreset is the preset behind random themes, using the configured
// contrast algorithm.
func (c *Config) randomPreset() palette.Preset {
	algo, err := palette.ParseAlgorithm(c.contrastAlgorithm)
	if err != nil {
		return palette.Random
	}
	return palette.RandomFor(algo)
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RIDDLEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "riddlebox",
		Short:         "Guess the animal the riddler is thinking of, one chat message at a time.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: RIDDLEBOX_BIND)")
	fs.StringVar(&cfg.contrastAlgorithm, "contrast-algorithm", "apca", "contrast formula for random themes: apca or wcag21 (env: RIDDLEBOX_CONTRAST_ALGORITHM)")
	fs.IntVar(&cfg.contrastAttempts, "contrast-attempts", 1000, "colors to try before falling back to the default theme (env: RIDDLEBOX_CONTRAST_ATTEMPTS)")
	fs.DurationVar(&cfg.oracleTimeout, "oracle-timeout", 30*time.Second, "time to wait for the riddler to answer (env: RIDDLEBOX_ORACLE_TIMEOUT)")
	fs.StringVar(&cfg.oracleURL, "oracle-url", "", "remote riddler endpoint; the built-in riddler is used if unset (env: RIDDLEBOX_ORACLE_URL)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: RIDDLEBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: RIDDLEBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: RIDDLEBOX_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle games are ended (env: RIDDLEBOX_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: RIDDLEBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: RIDDLEBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: RIDDLEBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: RIDDLEBOX_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("riddlebox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
