package recipe

import "context"

// Gateway sends a built prompt to a generative model and reports what came back.
// Implementations never return a Go error: every failure is folded into the Result.
type Gateway interface {
	Generate(ctx context.Context, prompt string) Result
}
