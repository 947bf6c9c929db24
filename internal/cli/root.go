// Package cli wires the fitnutri commands: the HTTP server and the offline
// generate, export, import and reset tools.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/terraincognita07/fitnutri/internal/config"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"db":        config.KeyDBPath,
	"memory":    config.KeyMemory,
	"port":      config.KeyPort,
	"provider":  config.KeyDefaultProvider,
	"log-level": config.KeyLogLevel,
	"log-file":  config.KeyLogFile,
	"language":  config.KeyLanguage,
	"tz":        config.KeyTimezone,
}

type commandEnv struct {
	viper      *viper.Viper
	configFile string
	envFile    string
	config     config.Config
	clients    ClientFactory
	logOutput  io.Writer
}

func (env *commandEnv) bootstrap(ctx context.Context) (*Runtime, error) {
	return Bootstrap(ctx, env.config, BootstrapOptions{
		LogOutput: env.logOutput,
		Clients:   env.clients,
	})
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&commandEnv{viper: config.New(), clients: DefaultClients})
}

func newRootCommand(env *commandEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitnutri",
		Short:         "AI workout and nutrition planner",
		Long:          "fitnutri generates workout plans, nutrition plans and recipes with Gemini or OpenAI and keeps your plans, logs and progress in a local store.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(env.viper, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(env.viper, env.configFile, env.envFile)
			if err != nil {
				return err
			}
			env.config = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&env.configFile, "config", "c", "", "config file (default ./fitnutri.yaml)")
	flags.StringVar(&env.envFile, "env-file", "", "dotenv file (default ./.env)")
	flags.String("db", "", "SQLite database path")
	flags.Bool("memory", false, "keep all state in memory")
	flags.String("provider", "", "default AI provider: gemini or openai")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")
	flags.String("log-file", "", "also write logs to this rotated file")
	flags.String("language", "", "default language for messages")
	flags.String("tz", "", "time zone for dates")

	root.AddCommand(
		newServeCommand(env),
		newGenerateCommand(env),
		newStateCommand(env),
		newExercisesCommand(env),
		newMetricsCommand(env),
		newExportCommand(env),
		newImportCommand(env),
		newResetCommand(env),
	)
	return root
}

// bindFlags lets flags that were set on the command line override every
// other configuration source.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		key, ok := flagKeys[flag.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, flag)
	})
	return bindErr
}

func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
