package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitnutri/internal/store"
)

func newStateCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:       "state [slice]",
		Short:     "Print the stored state, or one slice of it",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: store.SliceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()

			state := runtime.Store.State()
			if len(args) == 0 {
				return writeJSON(cmd.OutOrStdout(), state)
			}
			slice, ok := state.Slice(args[0])
			if !ok {
				return fmt.Errorf("unknown slice %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), slice)
		},
	}
}

func newExportCommand(env *commandEnv) *cobra.Command {
	var out string

	command := &cobra.Command{
		Use:   "export",
		Short: "Write every slice to a JSON export file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()

			payload, fileName, err := runtime.Transfer.ExportJSON()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(payload)
				return err
			}
			if out == "" {
				out = fileName
			}
			if err := os.WriteFile(out, payload, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}
	command.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout (default fitness_data_<date>.json)")
	return command
}

func newImportCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all stored data with an export file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readImportSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()

			if err := runtime.Transfer.Import(data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), runtime.I18n.Translate(runtime.Config.Language, "message.imported"))
			return nil
		},
	}
}

func readImportSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return data, nil
}
