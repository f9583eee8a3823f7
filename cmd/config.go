package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luca-patrignani/cards-against/application"
	"github.com/luca-patrignani/cards-against/catalog"
)

type Config struct {
	name             string
	bind             string
	port             int
	discoveryPort    int
	announceInterval time.Duration
	handSize         int
	dataset          string
	peers            []string
	tlsCert          string
	tlsKey           string
	tlsCA            string
	verbose          bool
}

func (c *Config) validate() error {
	if c.port < 0 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 0-65535 inclusive): %d", c.port)
	}
	if c.discoveryPort < 1 || c.discoveryPort > 65535 {
		return fmt.Errorf("invalid discovery port (must be between 1-65535 inclusive): %d", c.discoveryPort)
	}
	if c.announceInterval <= 0 {
		return fmt.Errorf("invalid announce interval: %v", c.announceInterval)
	}
	if c.handSize < 1 {
		return fmt.Errorf("invalid hand size: %d", c.handSize)
	}
	if c.dataset == "" {
		return errors.New("--dataset must not be empty")
	}
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.tlsCert != "" && c.tlsCA == "" {
		return errors.New("--tls-ca is required to verify the other players")
	}
	if c.tlsCA != "" && c.tlsCert == "" {
		return errors.New("--tls-ca needs --tls-cert and --tls-key")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CARDSAGAINST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "cards-against",
		Short:   "A party card game played over a mesh of nearby devices.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.name, "name", "n", "", "player name, asked for when empty (env: CARDSAGAINST_NAME)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CARDSAGAINST_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 0, "port to listen on, 0 picks a free one (env: CARDSAGAINST_PORT)")
	fs.IntVar(&cfg.discoveryPort, "discovery-port", 53550, "udp port used to find nearby players (env: CARDSAGAINST_DISCOVERY_PORT)")
	fs.DurationVar(&cfg.announceInterval, "announce-interval", time.Second, "time between discovery announcements (env: CARDSAGAINST_ANNOUNCE_INTERVAL)")
	fs.IntVar(&cfg.handSize, "hand-size", application.DefaultHandSize, "responses held by each player (env: CARDSAGAINST_HAND_SIZE)")
	fs.StringVarP(&cfg.dataset, "dataset", "d", catalog.Base, "card dataset, the built-in base set or a json file (env: CARDSAGAINST_DATASET)")
	fs.StringSliceVar(&cfg.peers, "peers", nil, "addresses of players to connect to at startup (env: CARDSAGAINST_PEERS)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CARDSAGAINST_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CARDSAGAINST_TLS_KEY)")
	fs.StringVar(&cfg.tlsCA, "tls-ca", "", "path to the certificates trusted for other players (env: CARDSAGAINST_TLS_CA)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display debug output (env: CARDSAGAINST_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("cards-against v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
