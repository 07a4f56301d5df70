package workflow

import (
	"context"
	"fmt"
)

// maxSteps bounds a single pipeline run. Every pipeline here terminates in a
// handful of transitions; hitting the bound means a step function is cycling.
const maxSteps = 32

// Context holds the per-request state shared across a pipeline's steps. One
// instance per run; never shared across requests.
type Context struct {
	// Query is the caller's query text.
	Query string
	// Classifications is the caller-supplied classification scope. It is the
	// only source of classification filtering; filter generation never
	// proposes it.
	Classifications []string
}

// Pipeline advances one transition: given the current event it returns the
// next event. Returning StopEvent ends the run.
type Pipeline interface {
	Step(ctx context.Context, wc *Context, event Event) (Event, error)
}

// Run drives a pipeline from StartEvent to StopEvent and returns the result
// payload. Steps execute strictly sequentially; the first error aborts the
// run.
func Run(ctx context.Context, p Pipeline, wc *Context) (string, error) {
	var event Event = StartEvent{}

	for i := 0; i < maxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		next, err := p.Step(ctx, wc, event)
		if err != nil {
			return "", err
		}
		if stop, ok := next.(StopEvent); ok {
			return stop.Result, nil
		}
		event = next
	}

	return "", fmt.Errorf("pipeline did not terminate after %d steps", maxSteps)
}
