// Package progress derives the statistics and achievements shown by the
// progress command from the cached collections.
package progress

import (
	"math"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

const trendWindow = 7

type Stats struct {
	TotalDays         int
	AverageMood       float64
	AverageAnxiety    float64
	ThoughtRecords    int
	ErpSessions       int
	CompletedErp      int
	ErpCompletionRate int
	// MoodTrend is the newest minus the oldest mood of the last seven
	// entries, or 0 with fewer than two.
	MoodTrend int
}

// Compute expects every slice newest first, as the store keeps them.
func Compute(moods []entities.MoodEntry, thoughts []entities.ThoughtRecord, erps []entities.ErpSession) Stats {
	s := Stats{
		TotalDays:      len(moods),
		ThoughtRecords: len(thoughts),
		ErpSessions:    len(erps),
	}

	if len(moods) > 0 {
		var mood, anxiety int
		for _, m := range moods {
			mood += m.Mood
			anxiety += m.Anxiety
		}
		s.AverageMood = round1(float64(mood) / float64(len(moods)))
		s.AverageAnxiety = round1(float64(anxiety) / float64(len(moods)))
	}

	for _, e := range erps {
		if e.Completed {
			s.CompletedErp++
		}
	}
	if len(erps) > 0 {
		s.ErpCompletionRate = int(math.Round(float64(s.CompletedErp) / float64(len(erps)) * 100))
	}

	recent := moods[:min(len(moods), trendWindow)]
	if len(recent) >= 2 {
		s.MoodTrend = recent[0].Mood - recent[len(recent)-1].Mood
	}

	return s
}

func (s Stats) TrendLabel() string {
	switch {
	case s.MoodTrend > 0:
		return "Improving"
	case s.MoodTrend < 0:
		return "Declining"
	default:
		return "Stable"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
