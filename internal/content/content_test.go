package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Catalogs(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Education.Items, 8)
	assert.Len(t, c.Education.Categories, 5)
	assert.Len(t, c.Meditation.Guided, 6)
	assert.Len(t, c.Meditation.Quick, 3)
	assert.Len(t, c.Sleep.Stories, 3)
	assert.Len(t, c.Sleep.Sounds, 6)
	assert.Len(t, c.Crisis.Grounding, 3)
	assert.Len(t, c.Crisis.CalmingSounds, 4)
	assert.Len(t, c.Tracking.Triggers, 8)
	assert.Len(t, c.Tracking.Exposures, 8)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestEducationLookups(t *testing.T) {
	c := MustLoad()

	it, ok := c.EducationItem("erp-explained")
	require.True(t, ok)
	assert.Equal(t, "video", it.Type)
	assert.Equal(t, 18, it.Duration)
	assert.Equal(t, "treatment", it.Category)
	assert.Len(t, it.KeyPoints, 4)

	_, ok = c.EducationItem("missing")
	assert.False(t, ok)

	assert.Len(t, c.EducationByCategory("basics"), 2)
	assert.Len(t, c.EducationByCategory("coping"), 2)
	assert.Len(t, c.EducationByCategory("all"), 8)
	assert.Empty(t, c.EducationByCategory("nope"))
}

func TestGroundingSteps(t *testing.T) {
	c := MustLoad()

	g, ok := c.Grounding("grounding-54321")
	require.True(t, ok)
	require.Len(t, g.Steps, 5)
	assert.Equal(t, "Name 5 things you can see around you", g.Steps[0])

	g, ok = c.Grounding("breathing-478")
	require.True(t, ok)
	assert.Len(t, g.Steps, 4)
}

func TestHotlines(t *testing.T) {
	c := MustLoad()

	var links []string
	for _, h := range c.Crisis.Hotlines {
		links = append(links, h.Link)
	}
	assert.Equal(t, []string{CrisisCallLink, CrisisTextLink, EmergencyCallLink}, links)
}

func TestTrackAndAudioKey(t *testing.T) {
	c := MustLoad()

	tr, ok := c.Track("mountain-retreat")
	require.True(t, ok)
	assert.Equal(t, 30, tr.Duration)
	assert.Equal(t, "Michael", tr.Narrator)

	tr, ok = c.Track("loving-kindness")
	require.True(t, ok)
	assert.Equal(t, "Self-Compassion Practice", tr.Title)

	_, ok = c.Track("nope")
	assert.False(t, ok)

	assert.Equal(t, "audio/rain.mp3", AudioKey("rain"))
}

func TestCopingStrategies(t *testing.T) {
	c := MustLoad()

	var ids []string
	for _, s := range c.Coping.Strategies {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.Instructions, s.ID)
	}
	assert.Equal(t, []string{"breathing", "grounding", "progressive", "distraction", "mindfulness", "delay"}, ids)

	s, ok := c.Strategy("mindfulness")
	require.True(t, ok)
	assert.Equal(t, "Mindful Observation", s.Title)
	assert.Equal(t, `Label it: "I'm having the thought that..."`, s.Instructions[1])
	assert.Equal(t, "Remember: thoughts are not facts", s.Instructions[2])

	_, ok = c.Strategy("nope")
	assert.False(t, ok)

	b := c.Coping.Breathing
	assert.Equal(t, "breathing", b.Strategy)
	assert.Equal(t, 4, b.Cycles)
	assert.Equal(t, 19*time.Second, b.CycleLength())
	_, ok = c.Strategy(b.Strategy)
	assert.True(t, ok)
}

func TestResources(t *testing.T) {
	r := MustLoad().Resources

	require.Len(t, r.Crisis, 3)
	assert.Equal(t, "tel:988", r.Crisis[0].Link())
	assert.Equal(t, "", r.Crisis[1].Link())
	assert.Equal(t, "tel:18006624357", r.Crisis[2].Link())

	assert.Len(t, r.Organizations, 4)
	assert.Equal(t, "https://iocdf.org", r.Organizations[0].URL)
	assert.Len(t, r.Therapies, 4)
	assert.Contains(t, r.FindingTherapist, "therapist directory")
	assert.True(t, strings.HasPrefix(r.Note, "While self-help resources"))

	books := r.SelfHelpByType(SelfHelpBook)
	require.Len(t, books, 3)
	assert.Equal(t, "Jeffrey M. Schwartz", books[1].Author)
	apps := r.SelfHelpByType(SelfHelpApp)
	require.Len(t, apps, 2)
	assert.Empty(t, apps[0].Author)
}
