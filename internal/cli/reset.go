package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("reset deletes all plans, logs and progress; rerun with --yes to confirm")

func newResetCommand(env *commandEnv) *cobra.Command {
	var confirmed bool

	command := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data and restore the default profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errResetNotConfirmed
			}
			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()
			return RunResetCommand(runtime, cmd.OutOrStdout())
		},
	}
	command.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm the reset")
	return command
}

func RunResetCommand(runtime *Runtime, out io.Writer) error {
	state := runtime.Store.State()
	removed := len(state.Workout.WorkoutPlans) + len(state.Nutrition.NutritionPlans) + len(state.Nutrition.SavedRecipes)

	if err := runtime.Transfer.Reset(); err != nil {
		return fmt.Errorf("reset storage: %w", err)
	}

	fmt.Fprintln(out, runtime.I18n.Translate(runtime.Config.Language, "message.reset"))
	fmt.Fprintf(out, "Removed %d saved plans and recipes.\n", removed)
	return nil
}
