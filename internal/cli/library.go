package cli

import (
	"slices"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/models"
)

func newExercisesCommand(env *commandEnv) *cobra.Command {
	var filter catalog.Filter
	var favoritesOnly bool

	command := &cobra.Command{
		Use:   "exercises [query]",
		Short: "Search the built-in exercise library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()

			if len(args) == 1 {
				filter.Query = args[0]
			}
			if favoritesOnly {
				filter.IDs = slices.Clone(runtime.Store.State().Exercise.FavoriteExercises)
				if filter.IDs == nil {
					filter.IDs = []string{}
				}
			}
			return writeJSON(cmd.OutOrStdout(), runtime.Exercises.Search(filter))
		},
	}
	command.Flags().StringSliceVar(&filter.MuscleGroups, "muscle", nil, "muscle groups to include")
	command.Flags().StringSliceVar(&filter.Equipment, "equipment", nil, "equipment to include")
	command.Flags().StringSliceVar(&filter.Difficulty, "difficulty", nil, "difficulty levels to include")
	command.Flags().StringSliceVar(&filter.Types, "type", nil, "exercise types to include")
	command.Flags().BoolVar(&favoritesOnly, "favorites", false, "only favorite exercises")
	return command
}

func newMetricsCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print BMI, energy and weight targets derived from the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()
			return writeJSON(cmd.OutOrStdout(), models.ComputeBodyMetrics(runtime.Store.State().User))
		},
	}
}
