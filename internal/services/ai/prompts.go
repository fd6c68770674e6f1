package ai

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Cuisine is one of the fixed cuisine choices offered by the form.
type Cuisine string

const (
	CuisineItalian   Cuisine = "Italian"
	CuisineBrazilian Cuisine = "Brazilian"
	CuisineAsian     Cuisine = "Asian"
	CuisineMexican   Cuisine = "Mexican"
	CuisineAny       Cuisine = "Any"
)

// Cuisines returns the selectable cuisines in display order.
func Cuisines() []Cuisine {
	return []Cuisine{CuisineItalian, CuisineBrazilian, CuisineAsian, CuisineMexican, CuisineAny}
}

// ParseCuisine matches s against the cuisine choices, ignoring case.
func ParseCuisine(s string) (Cuisine, bool) {
	fold := cases.Fold()
	want := fold.String(s)
	for _, c := range Cuisines() {
		if fold.String(string(c)) == want {
			return c, true
		}
	}
	return "", false
}

const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 3
)

var difficultyLabels = map[int]string{
	1: "Very easy",
	2: "Easy",
	3: "Moderate",
	4: "Hard",
	5: "Challenging",
}

// DifficultyLabel returns the human-readable label for a level in
// [MinDifficulty, MaxDifficulty]. Other levels return "".
func DifficultyLabel(level int) string {
	return difficultyLabels[level]
}

// NoRestrictionPhrase stands in for the restriction when the user has none.
const NoRestrictionPhrase = "no dietary restriction"

// FormInput holds the five values collected by the form for one request.
// Restriction is only meaningful when HasRestriction is set.
type FormInput struct {
	Ingredients    string  `json:"ingredients"`
	Cuisine        Cuisine `json:"cuisine"`
	Difficulty     int     `json:"difficulty"`
	HasRestriction bool    `json:"has_restriction"`
	Restriction    string  `json:"restriction"`
}

// RestrictionPhrase is the dietary constraint as it appears in the prompt.
func (in FormInput) RestrictionPhrase() string {
	if !in.HasRestriction {
		return NoRestrictionPhrase
	}
	return in.Restriction
}

const suggestionTemplate = "Suggest a %s recipe with difficulty level %d, which is %s. " +
	"It should mainly use the following ingredients: %s, %s. " +
	"Present the recipe name, a list of additional ingredients if needed, and a brief step-by-step method."

// BuildPrompt turns the form values into the prompt sent to the model.
// Input is interpolated as-is: checking it is the caller's job.
func BuildPrompt(in FormInput) string {
	return fmt.Sprintf(suggestionTemplate,
		in.Cuisine,
		in.Difficulty,
		DifficultyLabel(in.Difficulty),
		in.Ingredients,
		in.RestrictionPhrase(),
	)
}
