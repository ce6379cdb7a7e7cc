package main

import (
	"fmt"
	"io"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the YAML layout accepted by the seed command.
type fixtureFile struct {
	Profiles []profileFixture `yaml:"profiles"`
	Tenders  []tenderFixture  `yaml:"tenders"`
}

type profileFixture struct {
	CompanyID         uint64          `yaml:"company_id"`
	UserID            uint64          `yaml:"user_id"`
	PrimarySector     string          `yaml:"primary_sector"`
	ActiveSectors     []string        `yaml:"active_sectors"`
	SubSectors        []string        `yaml:"sub_sectors"`
	PreferredRegions  []string        `yaml:"preferred_regions"`
	Keywords          []string        `yaml:"keywords"`
	Certifications    []string        `yaml:"certifications"`
	BudgetMin         *float64        `yaml:"budget_min"`
	BudgetMax         *float64        `yaml:"budget_max"`
	BudgetCurrency    string          `yaml:"budget_currency"`
	CompanySize       string          `yaml:"company_size"`
	YearsInOperation  string          `yaml:"years_in_operation"`
	Weights           *weightsFixture `yaml:"weights"`
	MinMatchThreshold float64         `yaml:"min_match_threshold"`
}

type weightsFixture struct {
	Semantic       float64 `yaml:"semantic"`
	ActiveSectors  float64 `yaml:"active_sectors"`
	Keywords       float64 `yaml:"keywords"`
	SubSectors     float64 `yaml:"sub_sectors"`
	Region         float64 `yaml:"region"`
	Budget         float64 `yaml:"budget"`
	Certifications float64 `yaml:"certifications"`
}

func (w *weightsFixture) toCore() *core.ScoringWeights {
	if w == nil {
		return nil
	}
	return &core.ScoringWeights{
		Semantic:       w.Semantic,
		ActiveSectors:  w.ActiveSectors,
		Keywords:       w.Keywords,
		SubSectors:     w.SubSectors,
		Region:         w.Region,
		Budget:         w.Budget,
		Certifications: w.Certifications,
	}
}

type tenderFixture struct {
	Title        string    `yaml:"title"`
	Description  string    `yaml:"description"`
	Category     string    `yaml:"category"`
	Region       string    `yaml:"region"`
	Budget       *float64  `yaml:"budget"`
	Currency     string    `yaml:"currency"`
	Summary      string    `yaml:"summary"`
	Tags         []string  `yaml:"tags"`
	Deadline     time.Time `yaml:"deadline"`
	DeadlineDays *int      `yaml:"deadline_in_days"` // Relative to the time of seeding
}

func parseFixtures(r io.Reader, now time.Time) ([]*core.Profile, []*core.Tender, error) {
	var f fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	profiles := make([]*core.Profile, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		profiles = append(profiles, &core.Profile{
			CompanyId:         core.ID(p.CompanyID),
			UserId:            core.ID(p.UserID),
			PrimarySector:     p.PrimarySector,
			ActiveSectors:     p.ActiveSectors,
			SubSectors:        p.SubSectors,
			PreferredRegions:  p.PreferredRegions,
			Keywords:          p.Keywords,
			Certifications:    p.Certifications,
			BudgetMin:         p.BudgetMin,
			BudgetMax:         p.BudgetMax,
			BudgetCurrency:    p.BudgetCurrency,
			CompanySize:       core.CompanySize(p.CompanySize),
			YearsInOperation:  core.YearsInOperation(p.YearsInOperation),
			Weights:           p.Weights.toCore(),
			MinMatchThreshold: p.MinMatchThreshold,
		})
	}

	tenders := make([]*core.Tender, 0, len(f.Tenders))
	for i, t := range f.Tenders {
		deadline := t.Deadline
		if t.DeadlineDays != nil {
			deadline = now.AddDate(0, 0, *t.DeadlineDays)
		}
		if deadline.IsZero() {
			return nil, nil, fmt.Errorf("tender %d (%q): deadline or deadline_in_days is required", i+1, t.Title)
		}
		tenders = append(tenders, &core.Tender{
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Region:      t.Region,
			Budget:      t.Budget,
			Currency:    t.Currency,
			Summary:     t.Summary,
			Tags:        t.Tags,
			Deadline:    deadline.UTC(),
		})
	}

	return profiles, tenders, nil
}
