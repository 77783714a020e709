package main

import (
	"fmt"
	"os"

	"github.com/coolbeans/memodrill/pkg/config"
	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/coolbeans/memodrill/pkg/memo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	v          *viper.Viper
	configPath string
	settings   *config.Settings
	log        logger.Logger
	enc        *memo.Encoder

	// bindings maps viper keys to flag names per command. Only the chain of
	// the executing command is bound, so commands may share a key.
	bindings map[*cobra.Command]map[string]string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		bindings: make(map[*cobra.Command]map[string]string),
	}

	rootCmd := &cobra.Command{
		Use:   "memodrill",
		Short: "Blindfold memo letter trainer",
		Long: `Memodrill trains the letter scheme used in blindfolded Rubik's cube solving.

It shows randomly chosen edge or corner pieces, asks for their memo letter,
and keeps timed CSV logs of every answer. It also manages letter-pair image
lists and drills them until they stick.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default memodrill.yaml in . or the user config dir)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("scheme", "", "lettering scheme YAML file")
	a.bindFlags(rootCmd, map[string]string{
		"debug":       "debug",
		"log_level":   "log-level",
		"scheme_file": "scheme",
	})

	rootCmd.AddCommand(quizCmd(a))
	rootCmd.AddCommand(lookupCmd(a))
	rootCmd.AddCommand(tableCmd(a))
	rootCmd.AddCommand(renderCmd(a))
	rootCmd.AddCommand(schemeCmd(a))
	rootCmd.AddCommand(pairsCmd(a))
	rootCmd.AddCommand(statsCmd(a))

	return rootCmd
}

// bindFlags records viper keys for flags of cmd, keyed by flag name.
func (a *app) bindFlags(cmd *cobra.Command, keys map[string]string) {
	a.bindings[cmd] = keys
}

// bindExecuting binds the flags of cmd and its parents.
func (a *app) bindExecuting(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for c := cmd; c != nil; c = c.Parent() {
		for key, name := range a.bindings[c] {
			if err := bindFlag(a.v, flags, key, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) error {
	f := flags.Lookup(name)
	if f == nil {
		return fmt.Errorf("flag --%s is not defined", name)
	}
	if err := v.BindPFlag(key, f); err != nil {
		return fmt.Errorf("binding flag --%s: %w", name, err)
	}
	return nil
}

// setup loads settings, builds the logger and the encoder.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.bindExecuting(cmd); err != nil {
		return err
	}
	settings, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings
	a.log = logger.NewConsoleLogger(cmd.ErrOrStderr(), settings.Level())
	if settings.File != "" {
		a.log.Debug("config loaded", logger.String("file", settings.File))
	}

	if settings.SchemeFile != "" {
		cfg, err := memo.LoadConfigFile(settings.SchemeFile)
		if err != nil {
			return err
		}
		if a.enc, err = memo.New(cfg); err != nil {
			return fmt.Errorf("scheme %s: %w", settings.SchemeFile, err)
		}
		a.log.Info("scheme loaded",
			logger.String("file", settings.SchemeFile),
			logger.String("name", a.enc.Name()))
		return nil
	}

	a.enc, err = memo.Default()
	return err
}
