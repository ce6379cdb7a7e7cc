package embedding

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/tenderfeed/catalog"
	"github.com/poiesic/tenderfeed/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildTenderText(t *testing.T) {
	cat := catalog.Default()

	tender := &core.Tender{
		Title:       "Invitation to Bid for Supply of Laptops",
		Category:    "IT",
		Region:      "Addis Ababa",
		Description: "Supply and delivery of 200 laptops.",
		Summary:     "Laptops for regional offices.",
		Deadline:    time.Now(),
	}
	assert.Equal(t,
		"Supply of Laptops\nCategory: IT\nRegion: Addis Ababa\nSupply and delivery of 200 laptops.\nLaptops for regional offices.",
		BuildTenderText(cat, tender, DefaultDescriptionBudget))

	bare := &core.Tender{Title: "Road maintenance"}
	assert.Equal(t, "Road maintenance", BuildTenderText(cat, bare, DefaultDescriptionBudget))

	assert.Empty(t, BuildTenderText(cat, &core.Tender{Title: "   "}, DefaultDescriptionBudget))
}

func TestBuildTenderText_TruncatesDescription(t *testing.T) {
	cat := catalog.Default()
	tender := &core.Tender{Title: "T", Description: strings.Repeat("word ", 300)}

	text := BuildTenderText(cat, tender, 100)
	description := strings.TrimPrefix(text, "T\n")
	assert.LessOrEqual(t, len([]rune(description)), 100)
	assert.True(t, strings.HasSuffix(description, "word"), "cut lands on a word boundary")
}

func TestTruncateAtWord(t *testing.T) {
	assert.Equal(t, "short", truncateAtWord("short", 10))
	assert.Equal(t, "hello", truncateAtWord("hello world", 8))
	assert.Equal(t, "abcdefgh", truncateAtWord("abcdefghijkl", 8), "no whitespace to back up to")
	assert.Equal(t, "ሰላም", truncateAtWord("ሰላም ዓለም", 5), "counts runes")
	assert.Equal(t, "anything", truncateAtWord("anything", 0))
}

func TestBuildProfileText(t *testing.T) {
	cat := catalog.Default()
	lo, hi := 100000.0, 2500000.0

	profile := &core.Profile{
		PrimarySector:    "IT",
		ActiveSectors:    []string{"IT", "Telecom"},
		SubSectors:       []string{"Networking"},
		PreferredRegions: []string{"Addis Ababa", "Oromia"},
		Keywords:         []string{"servers", "cloud", "fiber"},
		Certifications:   []string{"ISO 9001"},
		BudgetMin:        &lo,
		BudgetMax:        &hi,
		BudgetCurrency:   "ETB",
		CompanySize:      "small",
		YearsInOperation: "5_10",
	}

	want := strings.Join([]string{
		"Looking for tenders in Information Technology and Telecommunications.",
		"Interested in projects involving servers, cloud and fiber.",
		"Seeking opportunities related to servers, cloud, fiber.",
		"Keywords: servers cloud fiber",
		"Primary business sector: Information Technology.",
		"Specializing in Networking.",
		"Operating in Addis Ababa and Oromia.",
		"Holding certifications: ISO 9001.",
		"Project budgets between 100000 and 2500000 ETB.",
		"We are a small business with 10 to 50 employees.",
		"We are an experienced company with 5 to 10 years in operation.",
	}, " ")
	assert.Equal(t, want, BuildProfileText(cat, profile))
}

func TestBuildProfileText_OptionalFragments(t *testing.T) {
	cat := catalog.Default()
	hi := 5000.0

	assert.Empty(t, BuildProfileText(cat, &core.Profile{}))

	text := BuildProfileText(cat, &core.Profile{BudgetMax: &hi, CompanySize: "unknown"})
	assert.Equal(t, "Project budgets up to 5000.", text)

	text = BuildProfileText(cat, &core.Profile{ActiveSectors: []string{"Mining"}})
	assert.Equal(t, "Looking for tenders in Mining.", text, "unknown sectors use the code")
}

func TestJoinNatural(t *testing.T) {
	assert.Equal(t, "", joinNatural(nil))
	assert.Equal(t, "a", joinNatural([]string{"a"}))
	assert.Equal(t, "a and b", joinNatural([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinNatural([]string{"a", "b", "c"}))
}
