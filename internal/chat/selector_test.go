package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func first(int) int { return 0 }

func TestRules_CrisisIsFirst(t *testing.T) {
	require.NotEmpty(t, Rules)
	assert.Equal(t, "crisis", Rules[0].Name)
}

func TestSelect_CrisisWinsOverEverything(t *testing.T) {
	s := NewSelector(first)

	inputs := []string{
		"I feel dirty and I want to end it",
		"Checking the stove again, I might hurt myself",
		"I'm doing better but thinking about suicide",
		"SUICIDE",
		"too much, tired, intrusive thoughts, end it",
	}
	for _, in := range inputs {
		r := s.Select(in, NewUserContext())
		assert.Equal(t, "crisis", r.Rule, in)
		assert.Equal(t, CategoryCrisis, r.Category, in)
		assert.Equal(t, SeverityCrisis, r.Severity, in)
		assert.Contains(t, r.Content, "988", in)
		assert.Contains(t, r.Content, "741741", in)
	}
}

func TestSelect_RuleOrder(t *testing.T) {
	s := NewSelector(first)

	tests := []struct {
		in   string
		rule string
	}{
		{"germs everywhere", "contamination"},
		{"Did I lock the door?", "checking"},
		{"so much doubt", "checking"},
		{"horrible thoughts again", "intrusive"},
		{"it's all too much", "overwhelmed"},
		{"I'm exhausted", "exhausted"},
		{"some improvement lately", "progress"},
		// contamination outranks progress
		{"dirty hands but better", "contamination"},
		// overwhelmed outranks exhausted
		{"tired and overwhelmed", "overwhelmed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.rule, s.Select(tt.in, NewUserContext()).Rule)
		})
	}
}

func TestSelect_FallbackContainsBankPhrases(t *testing.T) {
	for i := 0; i < len(acknowledgments)*len(validations); i++ {
		n := i
		pick := func(size int) int { return n % size }
		r := NewSelector(pick).Select("just a normal day", NewUserContext())

		require.Empty(t, r.Rule)
		require.NotEmpty(t, r.Content)
		assert.True(t, hasAny(r.Content, acknowledgments), r.Content)
		assert.True(t, hasAny(r.Content, validations), r.Content)
	}
}

func hasAny(s string, bank []string) bool {
	for _, p := range bank {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func TestFallback_Clauses(t *testing.T) {
	s := NewSelector(first)

	low := UserContext{Mood: 3}
	r := s.Select("what do I do about work", low)
	assert.Contains(t, r.Content, helpClause)
	assert.Contains(t, r.Content, lowMoodClause)
	assert.Contains(t, r.Content, "how this affects your work life")

	high := UserContext{Mood: 7}
	r = s.Select("my relationship", high)
	assert.Contains(t, r.Content, sharingClause)
	assert.Contains(t, r.Content, resilienceClause)
	assert.Contains(t, r.Content, "how this impacts your relationships")

	r = s.Select("sleep is rough", high)
	assert.Contains(t, r.Content, "how this affects your sleep and daily routine")

	r = s.Select("hmm", high)
	assert.Contains(t, r.Content, "what a typical day looks like")
}

func TestEmotion(t *testing.T) {
	assert.Equal(t, EmotionConcerned, Emotion("this is a crisis"))
	assert.Equal(t, EmotionCelebratory, Emotion("feeling better"))
	assert.Equal(t, EmotionEmpathetic, Emotion("hello"))
}

func TestUserContext_Observe(t *testing.T) {
	uc := NewUserContext()
	assert.Equal(t, 5, uc.Mood)
	assert.Equal(t, StyleWarm, uc.Style)

	uc.Observe("i feel terrible, my doctor says i'm trying")
	assert.Equal(t, 2, uc.Mood)
	assert.Equal(t, StyleFormal, uc.Style)
	assert.Equal(t, []string{StrengthMotivation}, uc.Strengths)

	uc.Observe("amazing day with friends, therapy helps")
	assert.Equal(t, 9, uc.Mood)
	assert.Equal(t, StyleCasual, uc.Style)
	assert.Equal(t, []string{StrengthMotivation, StrengthHelpSeeking, StrengthSocialSupport}, uc.Strengths)

	// no cue leaves mood alone; strengths keep growing
	uc.Observe("help")
	uc.Observe("help")
	assert.Equal(t, 9, uc.Mood)
	assert.Len(t, uc.Strengths, 5)
}

func TestSelect_RuleReplyWording(t *testing.T) {
	s := NewSelector(first)

	tests := []struct {
		in   string
		want string
	}{
		{"I'm so tired", "that deep, bone-deep exhaustion that comes from fighting your own brain every day"},
		{"I'm so tired", "But here's what I've learned: the right kind of help actually gives you energy back."},
		{"some progress", "but I need you to really hear this: any movement toward feeling better"},
		{"some progress", "You should be proud of yourself. Seriously. Recovery isn't a straight line"},
		{"checking again", "It's like your brain becomes this really mean roommate who's constantly asking"},
		{"intrusive thoughts", "And I promise - nothing you tell me will shock me or change how I see you. 🤗"},
		{"too much", "putting on the airplane oxygen mask first, you know?"},
	}
	for _, tt := range tests {
		assert.Contains(t, s.Select(tt.in, NewUserContext()).Content, tt.want, tt.in)
	}
	assert.Contains(t, Greeting(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)), "things like CBT, ERP therapy, mindfulness, and others")
	assert.Contains(t, TechnicalDifficulty, "• Text HOME to 741741")
}
