package chat

import (
	"math/rand/v2"
	"strings"
)

const (
	EmotionSupportive  = "supportive"
	EmotionConcerned   = "concerned"
	EmotionCelebratory = "celebratory"
	EmotionEmpathetic  = "empathetic"
)

// Reply is a selected response. Rule is empty for the generic reply.
type Reply struct {
	Rule     string
	Category string
	Severity string
	Emotion  string
	Content  string
}

// Selector picks replies. It is safe for concurrent use as long as pick is.
type Selector struct {
	rules []Rule
	pick  func(n int) int
}

// NewSelector uses the package rules and pick for phrase-bank choices. A nil
// pick uses math/rand.
func NewSelector(pick func(n int) int) *Selector {
	if pick == nil {
		pick = rand.IntN
	}
	return &Selector{rules: Rules, pick: pick}
}

// Select maps a message to a reply given the user's current context. It
// does not modify uc.
func (s *Selector) Select(message string, uc UserContext) Reply {
	lower := strings.ToLower(message)
	emotion := Emotion(lower)

	for _, r := range s.rules {
		if r.Match(lower) {
			return Reply{Rule: r.Name, Category: r.Category, Severity: r.Severity, Emotion: emotion, Content: r.Template}
		}
	}

	return Reply{
		Category: CategoryGeneral,
		Severity: SeverityLow,
		Emotion:  emotion,
		Content:  fallback(lower, uc.Mood, s.pick),
	}
}

// Emotion tags a reply by the tone of the message it answers.
func Emotion(lower string) string {
	switch {
	case strings.Contains(lower, "crisis"):
		return EmotionConcerned
	case strings.Contains(lower, "better"):
		return EmotionCelebratory
	default:
		return EmotionEmpathetic
	}
}
