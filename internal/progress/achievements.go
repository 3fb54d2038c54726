package progress

import (
	"context"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

type Achievement struct {
	Type        string
	Title       string
	Description string
	Icon        string
	Earned      bool
}

type rule struct {
	typ, title, description, icon string
	earned                        func(Stats) bool
}

var rules = []rule{
	{"first_steps", "First Steps", "Started tracking your mental health", "🌱",
		func(s Stats) bool { return s.TotalDays >= 1 }},
	{"consistent_tracker", "Consistent Tracker", "Logged mood for 7 days", "📊",
		func(s Stats) bool { return s.TotalDays >= 7 }},
	{"thought_explorer", "Thought Explorer", "Completed 5 thought records", "🧠",
		func(s Stats) bool { return s.ThoughtRecords >= 5 }},
	{"erp_champion", "ERP Champion", "Completed 10 ERP sessions", "🏆",
		func(s Stats) bool { return s.CompletedErp >= 10 }},
	{"monthly_milestone", "Monthly Milestone", "Tracked mood for 30 days", "🎯",
		func(s Stats) bool { return s.TotalDays >= 30 }},
	{"anxiety_warrior", "Anxiety Warrior", "Average anxiety under 5", "⚡",
		func(s Stats) bool { return s.AverageAnxiety < 5 && s.TotalDays >= 10 }},
}

// Achievements evaluates every achievement against s.
func Achievements(s Stats) []Achievement {
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, Achievement{
			Type:        r.typ,
			Title:       r.title,
			Description: r.description,
			Icon:        r.icon,
			Earned:      r.earned(s),
		})
	}
	return out
}

// AchievementStore is the part of the entity store Award writes through.
type AchievementStore interface {
	AddAchievement(ctx context.Context, a entities.Achievement) *entities.Achievement
}

// Award stores every earned achievement whose title is not among stored
// yet and returns the rows that were written.
func Award(ctx context.Context, store AchievementStore, s Stats, stored []entities.Achievement) []entities.Achievement {
	have := make(map[string]bool, len(stored))
	for _, a := range stored {
		have[a.Title] = true
	}

	var added []entities.Achievement
	for _, a := range Achievements(s) {
		if !a.Earned || have[a.Title] {
			continue
		}
		row := store.AddAchievement(ctx, entities.Achievement{
			AchievementType: a.Type,
			Title:           a.Title,
			Description:     a.Description,
			StreakCount:     s.TotalDays,
		})
		if row != nil {
			added = append(added, *row)
			have[a.Title] = true
		}
	}
	return added
}
