package cli

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rostree/internal/adapters"
	"rostree/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "ROSTREE"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute(ctx context.Context) {
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:          "rostree",
		Short:        "Explore ROS 2 package dependencies",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newTreeCommand())
	cmd.AddCommand(newGraphCommand())
	cmd.AddCommand(newTUICommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("rostree")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/rostree")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// newAppService builds the shared service, honoring the optional
// filter_file and extra_roots config keys.
func newAppService() *app.Service {
	service := app.NewService()
	if path := viper.GetString("filter_file"); path != "" {
		filter, err := adapters.LoadDependencyFilter(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable filter file")
		} else {
			service.Filter = filter
		}
	}
	return service
}

// resolveExtraRoots merges config-declared source roots with the ones
// given on the command line.
func resolveExtraRoots(flagRoots []string) []string {
	roots := viper.GetStringSlice("extra_roots")
	return append(roots, flagRoots...)
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	default:
		return 1
	}
}