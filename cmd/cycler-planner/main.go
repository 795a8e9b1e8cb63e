package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/oxygene76/cycler-planner/pkg/planner"
	"github.com/oxygene76/cycler-planner/pkg/utils"
)

const (
	appName = "cycler-planner"
	version = "v0.1.0"
)

var (
	// Configuration
	cfgFile string
	config  *utils.Config

	logger log.Logger
	engine *planner.Planner
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Interplanetary transfer and cycler route planner",
	Long: `cycler-planner computes launch windows, Hohmann delta-v and propulsion
estimates for point-to-point transfers between inner solar system bodies,
and matches cargo requests to scheduled cycler routes.

Reference tables for bodies, propulsion systems and cycler routes come from
the config file; run "cycler-planner init" to write the defaults.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init rewrites the config file, so it must not depend on it loading
		if cmd.Name() == "init" {
			config = utils.DefaultConfig()
		} else if err := initConfig(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		var err error
		logger, err = utils.NewLogger(config.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if cmd.Name() != "init" && cmd.Name() != "help" {
			if engine, err = buildPlanner(config, logger); err != nil {
				return fmt.Errorf("failed to initialize planner: %w", err)
			}
		}
		return nil
	},
}

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the reference body, propulsion and cycler tables to the config
file so they can be edited. Existing files are kept unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			p, err := utils.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			path = p
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := utils.SaveConfig(utils.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cycler-planner/config.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(cyclerCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(bodiesCmd)
	rootCmd.AddCommand(propulsionCmd)
	rootCmd.AddCommand(routesCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

// initConfig loads the explicit config file, or searches the default locations
func initConfig() error {
	var err error
	if cfgFile != "" {
		config, err = utils.LoadConfigFile(cfgFile)
	} else {
		config, err = utils.LoadConfig()
	}
	return err
}

// buildPlanner wires a planner from a validated config
func buildPlanner(cfg *utils.Config, logger log.Logger) (*planner.Planner, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return nil, err
	}
	logger.Debug("planner initialized", "epoch", settings.Epoch.Format("2006-01-02"), "seed", sampler.Seed())
	return planner.New(cfg.Catalogs(), settings, sampler, planner.WithLogger(logger)), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
