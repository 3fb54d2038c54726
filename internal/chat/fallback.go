package chat

import "strings"

var acknowledgments = []string{
	"I hear you.",
	"That makes complete sense.",
	"I can really understand that.",
	"Thank you for sharing that with me.",
	"That sounds really difficult.",
	"I appreciate you being so open about this.",
	"That takes courage to say.",
}

var validations = []string{
	"Your feelings are completely valid.",
	"Anyone would struggle with this.",
	"You're not alone in feeling this way.",
	"This is such a human experience.",
	"It's okay to feel overwhelmed by this.",
}

const resonanceLine = "What you're sharing really resonates with me. I can hear both the struggle and the strength in your words, and I want you to know that both are completely valid."

const (
	helpClause    = "It sounds like you're looking for some direction, which makes total sense. Sometimes when we're in the thick of it, it's hard to see the path forward."
	sharingClause = "I'm really glad you felt comfortable sharing this with me."

	lowMoodClause    = "I can sense this is a really difficult time for you. That's okay - we don't have to fix everything today. Sometimes just being heard and understood is the first step."
	resilienceClause = "I'm hearing some resilience in how you're approaching this, which gives me a lot of hope."
)

const lowMoodThreshold = 4

// fallback assembles the generic reply. pick returns an index in [0, n).
func fallback(lower string, mood int, pick func(n int) int) string {
	var b strings.Builder

	b.WriteString(acknowledgments[pick(len(acknowledgments))])
	b.WriteString(" ")
	b.WriteString(validations[pick(len(validations))])
	b.WriteString("\n\n")
	b.WriteString(resonanceLine)
	b.WriteString("\n\n")

	if strings.Contains(lower, "help") || strings.Contains(lower, "what do i do") {
		b.WriteString(helpClause)
	} else {
		b.WriteString(sharingClause)
	}
	b.WriteString("\n\n")

	if mood <= lowMoodThreshold {
		b.WriteString(lowMoodClause)
	} else {
		b.WriteString(resilienceClause)
	}
	b.WriteString("\n\n")

	b.WriteString("Can you tell me a bit more about what this experience is like for you day-to-day? I'm particularly interested in ")
	b.WriteString(focus(lower))
	b.WriteString(".\n\nI'm here, and I'm listening. Take your time. 💙")

	return b.String()
}

func focus(lower string) string {
	switch {
	case strings.Contains(lower, "work"):
		return "how this affects your work life"
	case strings.Contains(lower, "family"), strings.Contains(lower, "relationship"):
		return "how this impacts your relationships"
	case strings.Contains(lower, "sleep"):
		return "how this affects your sleep and daily routine"
	default:
		return "what a typical day looks like when you're struggling with this"
	}
}
