package embedding

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/tenderfeed/catalog"
	"github.com/poiesic/tenderfeed/core"
)

// DefaultDescriptionBudget is the number of description runes kept in tender text.
const DefaultDescriptionBudget = 1000

// BuildTenderText returns the descriptor embedded for a tender: the title with
// its issuer preamble removed, category and region lines, the description cut
// to budget runes and the curated summary. Empty parts are omitted.
func BuildTenderText(cat *catalog.Catalog, t *core.Tender, budget int) string {
	var lines []string

	if title := strings.TrimSpace(cat.StripTitlePreamble(t.Title)); title != "" {
		lines = append(lines, title)
	}
	if category := strings.TrimSpace(t.Category); category != "" {
		lines = append(lines, "Category: "+category)
	}
	if region := strings.TrimSpace(t.Region); region != "" {
		lines = append(lines, "Region: "+region)
	}
	if description := truncateAtWord(strings.TrimSpace(t.Description), budget); description != "" {
		lines = append(lines, description)
	}
	if summary := strings.TrimSpace(t.Summary); summary != "" {
		lines = append(lines, summary)
	}

	return strings.Join(lines, "\n")
}

// BuildProfileText returns a request-style descriptor for a profile.
// Keywords appear three times so they weigh more in the resulting vector.
func BuildProfileText(cat *catalog.Catalog, p *core.Profile) string {
	var sentences []string
	add := func(s string) { sentences = append(sentences, s) }

	if sectors := sectorLabels(cat, p.ActiveSectors); len(sectors) > 0 {
		add("Looking for tenders in " + joinNatural(sectors) + ".")
	}
	if keywords := nonEmpty(p.Keywords); len(keywords) > 0 {
		add("Interested in projects involving " + joinNatural(keywords) + ".")
		add("Seeking opportunities related to " + strings.Join(keywords, ", ") + ".")
		add("Keywords: " + strings.Join(keywords, " "))
	}
	if primary := strings.TrimSpace(p.PrimarySector); primary != "" {
		add("Primary business sector: " + cat.SectorLabel(primary) + ".")
	}
	if subSectors := nonEmpty(p.SubSectors); len(subSectors) > 0 {
		add("Specializing in " + joinNatural(subSectors) + ".")
	}
	if regions := nonEmpty(p.PreferredRegions); len(regions) > 0 {
		add("Operating in " + joinNatural(regions) + ".")
	}
	if certs := nonEmpty(p.Certifications); len(certs) > 0 {
		add("Holding certifications: " + strings.Join(certs, ", ") + ".")
	}
	if budget := budgetSentence(p); budget != "" {
		add(budget)
	}
	if phrase, ok := cat.CompanySizePhrase(p.CompanySize); ok {
		add("We are " + phrase + ".")
	}
	if phrase, ok := cat.YearsInOperationPhrase(p.YearsInOperation); ok {
		add("We are " + phrase + ".")
	}

	return strings.Join(sentences, " ")
}

func budgetSentence(p *core.Profile) string {
	currency := ""
	if c := strings.TrimSpace(p.BudgetCurrency); c != "" {
		currency = " " + c
	}
	switch {
	case p.BudgetMin != nil && p.BudgetMax != nil:
		return "Project budgets between " + formatAmount(*p.BudgetMin) + " and " + formatAmount(*p.BudgetMax) + currency + "."
	case p.BudgetMin != nil:
		return "Project budgets from " + formatAmount(*p.BudgetMin) + currency + "."
	case p.BudgetMax != nil:
		return "Project budgets up to " + formatAmount(*p.BudgetMax) + currency + "."
	}
	return ""
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sectorLabels(cat *catalog.Catalog, codes []string) []string {
	labels := make([]string, 0, len(codes))
	for _, code := range nonEmpty(codes) {
		labels = append(labels, cat.SectorLabel(code))
	}
	return labels
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// joinNatural joins items as "a", "a and b" or "a, b and c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// truncateAtWord cuts s to at most budget runes, backing up to the last
// whitespace when one exists in the second half of the kept text.
func truncateAtWord(s string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(s) <= budget {
		return s
	}

	runes := []rune(s)[:budget]
	cut := len(runes)
	for i := len(runes) - 1; i >= budget/2; i-- {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut]))
}
