package classifier

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fatiguelens/internal/config"
)

// Step is one rung of the ladder: scores strictly below UpperBound get Label.
type Step struct {
	UpperBound float64
	Label      string
}

// Ladder buckets a continuous fatigue score into a discrete severity label.
// Steps are evaluated in ascending bound order; the final label catches every
// score the bounded steps did not.
type Ladder struct {
	steps []Step
	final string
}

// New builds a ladder and validates that bounds are strictly ascending and
// every step is labelled.
func New(steps []Step, final string) (Ladder, error) {
	if strings.TrimSpace(final) == "" {
		return Ladder{}, errors.New("classifier: final label required")
	}
	prev := math.Inf(-1)
	for i, step := range steps {
		if strings.TrimSpace(step.Label) == "" {
			return Ladder{}, fmt.Errorf("classifier: step %d missing label", i)
		}
		if step.UpperBound <= prev {
			return Ladder{}, fmt.Errorf("classifier: bounds must be strictly ascending at step %d", i)
		}
		prev = step.UpperBound
	}
	return Ladder{steps: steps, final: final}, nil
}

// FromConfig converts configured ladder steps (last step unbounded) into a
// Ladder. The config package has already validated shape, but the conversion
// re-checks so the classifier never trusts its input.
func FromConfig(steps []config.LadderStep) (Ladder, error) {
	if len(steps) < 2 {
		return Ladder{}, errors.New("classifier: ladder needs at least two steps")
	}
	last := len(steps) - 1
	if steps[last].UpTo != nil {
		return Ladder{}, errors.New("classifier: final ladder step must be unbounded")
	}
	bounded := make([]Step, 0, last)
	for _, step := range steps[:last] {
		if step.UpTo == nil {
			return Ladder{}, errors.New("classifier: only the final ladder step may be unbounded")
		}
		bounded = append(bounded, Step{UpperBound: *step.UpTo, Label: step.Label})
	}
	return New(bounded, steps[last].Label)
}

// Classify maps a score to exactly one label using the strict less-than rule.
// Total over all reals, boundary values included.
func (l Ladder) Classify(score float64) string {
	for _, step := range l.steps {
		if score < step.UpperBound {
			return step.Label
		}
	}
	return l.final
}

// Labels returns the ladder's labels in ascending severity order.
func (l Ladder) Labels() []string {
	out := make([]string, 0, len(l.steps)+1)
	for _, step := range l.steps {
		out = append(out, step.Label)
	}
	return append(out, l.final)
}
