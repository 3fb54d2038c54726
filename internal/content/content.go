// Package content holds the static catalogs shipped with HopeKeeper:
// education library, meditations, sleep content, crisis toolkit, coping
// strategies, support resources and the tracker pick lists. Catalogs are
// YAML files baked into the binary.
package content

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type EducationItem struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Type        string   `yaml:"type" json:"type"`
	Duration    int      `yaml:"duration" json:"duration"`
	Category    string   `yaml:"category" json:"category"`
	Difficulty  string   `yaml:"difficulty" json:"difficulty"`
	Author      string   `yaml:"author" json:"author"`
	Description string   `yaml:"description" json:"description"`
	KeyPoints   []string `yaml:"key_points" json:"keyPoints"`
}

// Track is anything that can be played: meditations, sleep stories,
// sounds and breathing exercises. Duration is in minutes; sounds loop and
// have none.
type Track struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Duration    int    `yaml:"duration" json:"duration,omitempty"`
	Category    string `yaml:"category" json:"category,omitempty"`
	Difficulty  string `yaml:"difficulty" json:"difficulty,omitempty"`
	Narrator    string `yaml:"narrator" json:"narrator,omitempty"`
	Description string `yaml:"description" json:"description"`
}

type Hotline struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Link     string `yaml:"link" json:"link"`
}

type GroundingExercise struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Steps       []string `yaml:"steps" json:"steps"`
}

type CalmingSound struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Duration string `yaml:"duration" json:"duration"`
}

type Education struct {
	Categories []Category      `yaml:"categories" json:"categories"`
	Items      []EducationItem `yaml:"items" json:"items"`
}

type Meditation struct {
	Guided []Track `yaml:"guided" json:"guided"`
	Quick  []Track `yaml:"quick" json:"quick"`
}

type Sleep struct {
	Stories   []Track `yaml:"stories" json:"stories"`
	Sounds    []Track `yaml:"sounds" json:"sounds"`
	Breathing []Track `yaml:"breathing" json:"breathing"`
}

type Crisis struct {
	Hotlines      []Hotline           `yaml:"hotlines" json:"hotlines"`
	Grounding     []GroundingExercise `yaml:"grounding" json:"grounding"`
	CalmingSounds []CalmingSound      `yaml:"calming_sounds" json:"calmingSounds"`
}

type CopingStrategy struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Instructions []string `yaml:"instructions" json:"instructions"`
}

type BreathingPhase struct {
	Name    string `yaml:"name" json:"name"`
	Seconds int    `yaml:"seconds" json:"seconds"`
}

// BreathingPattern drives the guided breathing counter of one strategy.
type BreathingPattern struct {
	Strategy string           `yaml:"strategy" json:"strategy"`
	Cycles   int              `yaml:"cycles" json:"cycles"`
	Phases   []BreathingPhase `yaml:"phases" json:"phases"`
}

type Coping struct {
	Strategies []CopingStrategy `yaml:"strategies" json:"strategies"`
	Breathing  BreathingPattern `yaml:"breathing" json:"breathing"`
}

// CrisisContact is a helpline. Type is "phone" or "text".
type CrisisContact struct {
	Title       string `yaml:"title" json:"title"`
	Contact     string `yaml:"contact" json:"contact"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
}

type Organization struct {
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

type Therapy struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// SelfHelp is a book or an app. Apps have no author.
type SelfHelp struct {
	Title       string `yaml:"title" json:"title"`
	Author      string `yaml:"author" json:"author,omitempty"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
}

type Resources struct {
	Crisis           []CrisisContact `yaml:"crisis" json:"crisis"`
	Organizations    []Organization  `yaml:"organizations" json:"organizations"`
	Therapies        []Therapy       `yaml:"therapies" json:"therapies"`
	FindingTherapist string          `yaml:"finding_therapist" json:"findingTherapist"`
	SelfHelp         []SelfHelp      `yaml:"self_help" json:"selfHelp"`
	Note             string          `yaml:"note" json:"note"`
}

type Tracking struct {
	Triggers  []string `yaml:"triggers" json:"triggers"`
	Exposures []string `yaml:"exposures" json:"exposures"`
}

// Catalog is the whole static library.
type Catalog struct {
	Education  Education
	Meditation Meditation
	Sleep      Sleep
	Crisis     Crisis
	Coping     Coping
	Resources  Resources
	Tracking   Tracking
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalogs once and returns the shared result.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse()
	})
	return loaded, loadErr
}

// MustLoad is Load for program start-up.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func parse() (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		out  any
	}{
		{"education.yaml", &c.Education},
		{"meditation.yaml", &c.Meditation},
		{"sleep.yaml", &c.Sleep},
		{"crisis.yaml", &c.Crisis},
		{"coping.yaml", &c.Coping},
		{"resources.yaml", &c.Resources},
		{"tracking.yaml", &c.Tracking},
	}
	for _, f := range files {
		data, err := catalogFS.ReadFile(path.Join("catalog", f.name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(data, f.out); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return c, nil
}

// EducationItem looks an item up by id.
func (c *Catalog) EducationItem(id string) (EducationItem, bool) {
	for _, it := range c.Education.Items {
		if it.ID == id {
			return it, true
		}
	}
	return EducationItem{}, false
}

// EducationByCategory filters the library; "" and "all" return everything.
func (c *Catalog) EducationByCategory(category string) []EducationItem {
	if category == "" || category == "all" {
		return c.Education.Items
	}
	var out []EducationItem
	for _, it := range c.Education.Items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Grounding(id string) (GroundingExercise, bool) {
	for _, g := range c.Crisis.Grounding {
		if g.ID == id {
			return g, true
		}
	}
	return GroundingExercise{}, false
}

// Track finds a playable item across meditation and sleep catalogs.
func (c *Catalog) Track(id string) (Track, bool) {
	groups := [][]Track{c.Meditation.Guided, c.Meditation.Quick, c.Sleep.Stories, c.Sleep.Sounds, c.Sleep.Breathing}
	for _, g := range groups {
		for _, t := range g {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Track{}, false
}

// AudioKey is the object storage key of a track's audio file.
func AudioKey(trackID string) string {
	return "audio/" + trackID + ".mp3"
}
