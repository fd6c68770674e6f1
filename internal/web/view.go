package web

import (
	"fmt"
	"html/template"

	"github.com/socialchef/sous/internal/services/ai"
	"github.com/socialchef/sous/internal/services/recipe"
)

const (
	PageTitle    = "Personalized Recipe Generator with AI"
	PageSubtitle = "Create your own personalized recipe with the help of Artificial Intelligence!"

	PromptCaption    = "Prompt that will be sent to the AI (for learning purposes)"
	HeadingSuggested = "Suggested recipe"

	msgBlocked           = "The prompt was blocked."
	msgBlockedReasonFmt  = "The prompt was blocked. Reason: %s"
	msgSafetyCaptionFmt  = "Category: %s, Probability: %s"
	MsgBlockedFallback   = "The AI could not generate a response for this prompt. Check the messages above or try rephrasing your request."
	msgGenerationErrFmt  = "Error generating AI response: %s"
	msgAPIDetailFmt      = "Gemini API detail: %s"
	MsgGenerationFailed  = "Could not generate the recipe. Check the messages above or try again later."
	msgDifficultyCaption = "Selected level: %d - %s"
)

// ResultView is everything the page shows for one Result. Body is filled in
// by the Renderer from Markdown.
type ResultView struct {
	Outcome  recipe.Outcome
	Heading  string
	Markdown string
	Body     template.HTML
	Warnings []string
	Captions []string
	Errors   []string
	Fallback string
}

// NewResultView maps a gateway result onto display strings.
func NewResultView(res recipe.Result) ResultView {
	view := ResultView{Outcome: res.Outcome}

	switch res.Outcome {
	case recipe.OutcomeSuccess:
		view.Heading = HeadingSuggested
		view.Markdown = res.Text
	case recipe.OutcomeBlocked:
		if res.BlockReason != "" {
			view.Warnings = append(view.Warnings, fmt.Sprintf(msgBlockedReasonFmt, res.BlockReason))
		} else {
			view.Warnings = append(view.Warnings, msgBlocked)
		}
		for _, r := range res.SafetyRatings {
			view.Captions = append(view.Captions, fmt.Sprintf(msgSafetyCaptionFmt, r.Category, r.Probability))
		}
		view.Fallback = MsgBlockedFallback
	default:
		message := "unknown error"
		if res.Err != nil {
			message = res.Err.Message
		}
		view.Errors = append(view.Errors, fmt.Sprintf(msgGenerationErrFmt, message))
		if res.Err != nil && res.Err.Detail != "" {
			view.Errors = append(view.Errors, fmt.Sprintf(msgAPIDetailFmt, res.Err.Detail))
		}
		view.Errors = append(view.Errors, MsgGenerationFailed)
	}

	return view
}

type CuisineOption struct {
	Value    string
	Selected bool
}

type DifficultyOption struct {
	Level int
	Label string
}

// Page is the data for the single form page.
type Page struct {
	Title    string
	Subtitle string

	Ingredients       string
	Cuisines          []CuisineOption
	Difficulty        int
	Difficulties      []DifficultyOption
	DifficultyCaption string
	HasRestriction    bool
	Restriction       string

	Warnings []string

	PromptCaption string
	Prompt        string
	Result        *ResultView
}

// NewPage builds a page that echoes the submitted values back into the form.
func NewPage(in ai.FormInput) Page {
	difficulty := in.Difficulty
	if ai.DifficultyLabel(difficulty) == "" {
		difficulty = ai.DefaultDifficulty
	}

	page := Page{
		Title:             PageTitle,
		Subtitle:          PageSubtitle,
		Ingredients:       in.Ingredients,
		Difficulty:        difficulty,
		DifficultyCaption: DifficultyCaption(difficulty),
		HasRestriction:    in.HasRestriction,
		Restriction:       in.Restriction,
		PromptCaption:     PromptCaption,
	}

	selected := in.Cuisine
	if _, ok := ai.ParseCuisine(string(selected)); !ok {
		selected = ai.Cuisines()[0]
	}
	for _, c := range ai.Cuisines() {
		page.Cuisines = append(page.Cuisines, CuisineOption{Value: string(c), Selected: c == selected})
	}
	for level := ai.MinDifficulty; level <= ai.MaxDifficulty; level++ {
		page.Difficulties = append(page.Difficulties, DifficultyOption{Level: level, Label: ai.DifficultyLabel(level)})
	}

	return page
}

// DifficultyCaption is the line shown under the slider.
func DifficultyCaption(level int) string {
	return fmt.Sprintf(msgDifficultyCaption, level, ai.DifficultyLabel(level))
}
