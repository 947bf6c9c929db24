package api

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/models"
)

// ListExercises takes comma-separated q, muscle, equipment, difficulty and
// type parameters; favorites=true keeps only the user's favorites.
func (handler *Handler) ListExercises(c *fiber.Ctx) error {
	favorites := handler.store.State().Exercise.FavoriteExercises
	if favorites == nil {
		favorites = []string{}
	}

	filter := catalog.Filter{
		Query:        c.Query("q"),
		MuscleGroups: splitQueryList(c.Query("muscle")),
		Equipment:    splitQueryList(c.Query("equipment")),
		Difficulty:   splitQueryList(c.Query("difficulty")),
		Types:        splitQueryList(c.Query("type")),
	}
	if c.QueryBool("favorites") {
		filter.IDs = slices.Clone(favorites)
	}

	return c.JSON(fiber.Map{
		"exercises": handler.exercises.Search(filter),
		"favorites": favorites,
	})
}

func (handler *Handler) GetExercise(c *fiber.Ctx) error {
	exercise, err := handler.exercises.Get(c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}

	state := handler.store.State().Exercise
	response := fiber.Map{
		"exercise": exercise,
		"favorite": slices.Contains(state.FavoriteExercises, exercise.ID),
	}
	if stat, ok := state.ExerciseStats[exercise.ID]; ok {
		response["stats"] = stat
	}
	return c.JSON(response)
}

func (handler *Handler) GetBodyMetrics(c *fiber.Ctx) error {
	return c.JSON(models.ComputeBodyMetrics(handler.store.State().User))
}

func splitQueryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	values := make([]string, 0, strings.Count(raw, ",")+1)
	for _, value := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
