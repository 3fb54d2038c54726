package chat

import "strings"

const (
	StyleWarm   = "warm"
	StyleFormal = "formal"
	StyleCasual = "casual"
)

const (
	StrengthMotivation    = "motivation"
	StrengthHelpSeeking   = "help-seeking"
	StrengthSocialSupport = "social support"
)

// UserContext is what the companion infers about the user during one
// conversation. Strengths accumulate for the whole session.
type UserContext struct {
	Mood      int
	Style     string
	Strengths []string
}

func NewUserContext() UserContext {
	return UserContext{Mood: 5, Style: StyleWarm}
}

type moodCue struct {
	words []string
	mood  int
}

// Earlier cues win, so "not great, pretty bad" reads as 3.
var moodCues = []moodCue{
	{[]string{"terrible", "awful"}, 2},
	{[]string{"bad", "struggling"}, 3},
	{[]string{"okay", "fine"}, 5},
	{[]string{"good", "better"}, 7},
	{[]string{"great", "amazing"}, 9},
}

// Observe updates the context from a lowercased message.
func (c *UserContext) Observe(lower string) {
	for _, cue := range moodCues {
		if containsAny(lower, cue.words...) {
			c.Mood = cue.mood
			break
		}
	}

	switch {
	case containsAny(lower, "doctor", "professional"):
		c.Style = StyleFormal
	case containsAny(lower, "casual", "friend"):
		c.Style = StyleCasual
	}

	if containsAny(lower, "trying", "working on") {
		c.Strengths = append(c.Strengths, StrengthMotivation)
	}
	if containsAny(lower, "therapy", "help") {
		c.Strengths = append(c.Strengths, StrengthHelpSeeking)
	}
	if containsAny(lower, "family", "friends") {
		c.Strengths = append(c.Strengths, StrengthSocialSupport)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
