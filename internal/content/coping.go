package content

import (
	"strings"
	"time"
	"unicode"
)

// Strategy looks a coping strategy up by id.
func (c *Catalog) Strategy(id string) (CopingStrategy, bool) {
	for _, s := range c.Coping.Strategies {
		if s.ID == id {
			return s, true
		}
	}
	return CopingStrategy{}, false
}

// CycleLength is the time one pass through every phase takes.
func (b BreathingPattern) CycleLength() time.Duration {
	var total time.Duration
	for _, p := range b.Phases {
		total += time.Duration(p.Seconds) * time.Second
	}
	return total
}

// Self-help kinds.
const (
	SelfHelpBook = "book"
	SelfHelpApp  = "app"
)

// SelfHelpByType returns the books or the apps, in catalog order.
func (r Resources) SelfHelpByType(typ string) []SelfHelp {
	var out []SelfHelp
	for _, s := range r.SelfHelp {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

// Link is the tel: link of a phone line, built from the digits of its
// contact. Text lines have none.
func (c CrisisContact) Link() string {
	if c.Type != "phone" {
		return ""
	}
	return "tel:" + strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, c.Contact)
}
