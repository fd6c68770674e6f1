package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialchef/sous/internal/services/ai"
	"github.com/socialchef/sous/internal/services/recipe"
)

func TestNewResultView_Success(t *testing.T) {
	view := NewResultView(recipe.Succeeded("Chicken Risotto... "))

	assert.Equal(t, recipe.OutcomeSuccess, view.Outcome)
	assert.Equal(t, "Suggested recipe", view.Heading)
	assert.Equal(t, "Chicken Risotto... ", view.Markdown)
	assert.Empty(t, view.Warnings)
	assert.Empty(t, view.Errors)
	assert.Empty(t, view.Fallback)
}

func TestNewResultView_Blocked(t *testing.T) {
	view := NewResultView(recipe.Blocked("SAFETY", []recipe.SafetyRating{
		{Category: "HARASSMENT", Probability: "LOW"},
	}))

	require.Len(t, view.Warnings, 1)
	assert.Contains(t, view.Warnings[0], "SAFETY")
	require.Len(t, view.Captions, 1)
	assert.Contains(t, view.Captions[0], "HARASSMENT")
	assert.Contains(t, view.Captions[0], "LOW")
	assert.Equal(t, MsgBlockedFallback, view.Fallback)
	assert.Empty(t, view.Heading)
	assert.Empty(t, view.Markdown)
}

func TestNewResultView_BlockedWithoutReason(t *testing.T) {
	view := NewResultView(recipe.Blocked("", nil))

	assert.Equal(t, []string{"The prompt was blocked."}, view.Warnings)
	assert.Empty(t, view.Captions)
	assert.Equal(t, MsgBlockedFallback, view.Fallback)
}

func TestNewResultView_ErrorWithoutDetail(t *testing.T) {
	view := NewResultView(recipe.Failed(&recipe.TransportError{Message: "connection refused", Kind: recipe.KindUnknown}))

	assert.Equal(t, []string{
		"Error generating AI response: connection refused",
		MsgGenerationFailed,
	}, view.Errors)
	assert.Empty(t, view.Heading)
}

func TestNewResultView_ErrorWithDetail(t *testing.T) {
	view := NewResultView(recipe.Failed(&recipe.TransportError{
		Message: "Error 429, Message: quota exceeded",
		Detail:  "quota exceeded",
		Kind:    recipe.KindQuotaExhausted,
	}))

	assert.Equal(t, []string{
		"Error generating AI response: Error 429, Message: quota exceeded",
		"Gemini API detail: quota exceeded",
		MsgGenerationFailed,
	}, view.Errors)
}

func TestNewPage(t *testing.T) {
	page := NewPage(ai.FormInput{
		Ingredients:    "eggs",
		Cuisine:        ai.CuisineMexican,
		Difficulty:     4,
		HasRestriction: true,
		Restriction:    "vegetarian",
	})

	assert.Equal(t, "eggs", page.Ingredients)
	assert.Equal(t, 4, page.Difficulty)
	assert.Equal(t, "Selected level: 4 - Hard", page.DifficultyCaption)
	assert.True(t, page.HasRestriction)
	assert.Equal(t, "vegetarian", page.Restriction)
	require.Len(t, page.Cuisines, 5)
	require.Len(t, page.Difficulties, 5)

	for _, c := range page.Cuisines {
		assert.Equal(t, c.Value == "Mexican", c.Selected, c.Value)
	}
}

func TestNewPage_Defaults(t *testing.T) {
	page := NewPage(ai.FormInput{})

	assert.Equal(t, ai.DefaultDifficulty, page.Difficulty)
	assert.Equal(t, "Selected level: 3 - Moderate", page.DifficultyCaption)
	assert.True(t, page.Cuisines[0].Selected)
	assert.Nil(t, page.Result)
	assert.Empty(t, page.Prompt)
}
