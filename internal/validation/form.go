package validation

import (
	"fmt"
	"strings"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/services/ai"
)

const (
	MsgIngredientsRequired = "Please provide the ingredient list."
	MsgCuisineRequired     = "Please provide the cuisine type."
)

// CheckForm is the only gate between a submission and the model call. It
// reports the first problem found, or nil when the prompt may be sent.
func CheckForm(in ai.FormInput) *apperrors.AppError {
	if strings.TrimSpace(in.Ingredients) == "" {
		return apperrors.NewValidationError(
			MsgIngredientsRequired,
			"INGREDIENTS_REQUIRED",
			"List the main ingredients you have, separated by commas.",
		)
	}

	// The select only offers valid cuisines; hand-built requests can still miss it.
	if _, ok := ai.ParseCuisine(string(in.Cuisine)); !ok {
		return apperrors.NewValidationError(
			MsgCuisineRequired,
			"CUISINE_REQUIRED",
			fmt.Sprintf("Choose one of: %s.", cuisineList()),
		)
	}

	if in.Difficulty < ai.MinDifficulty || in.Difficulty > ai.MaxDifficulty {
		return apperrors.NewValidationError(
			fmt.Sprintf("Difficulty must be between %d and %d.", ai.MinDifficulty, ai.MaxDifficulty),
			"DIFFICULTY_OUT_OF_RANGE",
			"",
		)
	}

	return nil
}

func cuisineList() string {
	names := make([]string, 0, len(ai.Cuisines()))
	for _, c := range ai.Cuisines() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
