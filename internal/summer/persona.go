package summer

import (
	"fmt"

	"github.com/wrapview/wrapview/internal/nlp"
)

// buildPersona formats the shareable vibe snapshot from the top
// two topics, prompt count, and streak. Pure string templating.
func buildPersona(topics []Stat, prompts, streak int) Persona {
	if len(topics) == 0 {
		return Persona{
			Blurb: "Your summer usage was low-volume but eclectic.",
			Tags: []string{
				fmt.Sprintf("%d prompts", prompts),
				fmt.Sprintf("%d-day streak", streak),
				nlp.GeneralTopic,
			},
		}
	}

	first := topics[0].Name
	second := nlp.GeneralTopic
	if len(topics) > 1 {
		second = topics[1].Name
	}
	return Persona{
		Blurb: fmt.Sprintf(
			"You leaned %s with a side of %s this summer.",
			first, second,
		),
		Tags: []string{
			fmt.Sprintf("%d prompts", prompts),
			fmt.Sprintf("%d-day streak", streak),
			first,
		},
	}
}

// buildRoast picks a deterministic roast line from the metrics.
// No randomness: identical inputs always produce the same text.
func buildRoast(topics []Stat, streak, panicCount, lolCount int) string {
	topTopic := nlp.GeneralTopic
	if len(topics) > 0 {
		topTopic = topics[0].Name
	}

	switch {
	case panicCount > lolCount && panicCount > 0:
		return fmt.Sprintf(
			"You hit the panic button %d times. %s clearly kept you up at night.",
			panicCount, topTopic,
		)
	case lolCount > panicCount && lolCount > 0:
		return fmt.Sprintf(
			"%d messages of pure comedy. At least someone found %s funny.",
			lolCount, topTopic,
		)
	case streak >= 7:
		return fmt.Sprintf(
			"A %d-day streak on %s. Touch grass occasionally.",
			streak, topTopic,
		)
	default:
		return fmt.Sprintf(
			"Mostly %s, zero drama. Suspiciously well-adjusted.",
			topTopic,
		)
	}
}
