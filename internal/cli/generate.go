package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

type generateOptions struct {
	prefsFile   string
	ingredients []string
	save        bool
	timeout     time.Duration
}

func newGenerateCommand(env *commandEnv) *cobra.Command {
	var options generateOptions

	command := &cobra.Command{
		Use:       "generate workout|nutrition|recipe",
		Short:     "Generate a plan or recipe with the configured AI provider",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(ai.KindWorkout), string(ai.KindNutrition), string(ai.KindRecipe)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ai.ParsePlanKind(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			prefs, err := readPreferencesFile(options.prefsFile)
			if err != nil {
				return err
			}

			runtime, err := env.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer runtime.Close()

			profile := runtime.Store.State().User
			if cmd.Flags().Changed("provider") {
				profile.Settings.AppSettings.AIProvider = runtime.Config.DefaultProvider
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), options.timeout)
			defer cancel()

			result, err := generatePlan(ctx, runtime, kind, profile, prefs, options)
			if err != nil {
				if raw, ok := ai.RawTextOf(err); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "raw %s response:\n%s\n", kind, raw)
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	flags := command.Flags()
	flags.StringVarP(&options.prefsFile, "prefs", "p", "", "JSON file with preferences for the plan")
	flags.StringSliceVarP(&options.ingredients, "ingredients", "i", nil, "ingredients for a recipe")
	flags.BoolVar(&options.save, "save", false, "store the result and make it the current plan")
	flags.DurationVar(&options.timeout, "timeout", 2*time.Minute, "give up on the provider after this long")
	return command
}

// generatePlan returns the parsed document, or the stored entry when save is
// set.
func generatePlan(ctx context.Context, runtime *Runtime, kind ai.PlanKind, profile models.UserProfile, rawPrefs []byte, options generateOptions) (any, error) {
	switch kind {
	case ai.KindWorkout:
		prefs := models.DefaultWorkoutPreferences()
		if err := decodePreferences(rawPrefs, &prefs); err != nil {
			return nil, err
		}
		document, err := runtime.Generation.GenerateWorkoutPlan(ctx, profile, prefs)
		if err != nil || !options.save {
			return document, err
		}
		return runtime.Plans.SaveWorkoutPlan(document, prefs)
	case ai.KindNutrition:
		var prefs models.NutritionPreferences
		if err := decodePreferences(rawPrefs, &prefs); err != nil {
			return nil, err
		}
		document, err := runtime.Generation.GenerateNutritionPlan(ctx, profile, prefs)
		if err != nil || !options.save {
			return document, err
		}
		return runtime.Plans.SaveNutritionPlan(document, prefs)
	default:
		var prefs models.RecipePreferences
		if err := decodePreferences(rawPrefs, &prefs); err != nil {
			return nil, err
		}
		document, err := runtime.Generation.GenerateRecipe(ctx, profile, options.ingredients, prefs)
		if err != nil || !options.save {
			return document, err
		}
		return runtime.Plans.SaveRecipe(document)
	}
}

func readPreferencesFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	return data, nil
}

func decodePreferences(raw []byte, target any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode preferences: %w", err)
	}
	return nil
}
