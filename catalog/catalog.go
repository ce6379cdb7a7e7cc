// Package catalog holds the static lookup tables used by tenderfeed:
// sectors and their sub-sectors, regions, certifications, keyword suggestions,
// the natural-language phrasing of profile enums, and tender title preamble rules.
//
// The tables are loaded from an embedded YAML resource and are immutable after load.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/tenderfeed/core"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog indicates the catalog resource failed to parse or validate.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Sector is a top-level business sector.
type Sector struct {
	Code       string   `yaml:"code"`
	Label      string   `yaml:"label"`
	SubSectors []string `yaml:"sub_sectors"`
}

// Catalog is the parsed set of lookup tables.
type Catalog struct {
	Sectors                    []Sector            `yaml:"sectors"`
	Regions                    []string            `yaml:"regions"`
	Certifications             []string            `yaml:"certifications"`
	CompanySizes               map[string]string   `yaml:"company_sizes"`
	YearsInOperation           map[string]string   `yaml:"years_in_operation"`
	KeywordSuggestionsBySector map[string][]string `yaml:"keyword_suggestions"`
	TitlePreambles             []string            `yaml:"title_preambles"`

	preambles []*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded resource is invalid,
// which can only happen through a broken build.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(defaultCatalog))
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded resource: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load parses and validates a catalog from YAML.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) compile() error {
	seen := make(map[string]struct{}, len(c.Sectors))
	for _, s := range c.Sectors {
		if s.Code == "" {
			return fmt.Errorf("%w: sector with empty code", ErrInvalidCatalog)
		}
		if _, dup := seen[s.Code]; dup {
			return fmt.Errorf("%w: duplicate sector %q", ErrInvalidCatalog, s.Code)
		}
		seen[s.Code] = struct{}{}
	}

	c.preambles = make([]*regexp.Regexp, 0, len(c.TitlePreambles))
	for i, p := range c.TitlePreambles {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("%w: title preamble %d: %w", ErrInvalidCatalog, i, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("%w: title preamble %d has no capture group", ErrInvalidCatalog, i)
		}
		c.preambles = append(c.preambles, re)
	}
	return nil
}

// Sector returns the sector with the given code.
func (c *Catalog) Sector(code string) (Sector, bool) {
	for _, s := range c.Sectors {
		if strings.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return Sector{}, false
}

// SectorLabel returns the human label of a sector, or the code itself when unknown.
func (c *Catalog) SectorLabel(code string) string {
	if s, ok := c.Sector(code); ok && s.Label != "" {
		return s.Label
	}
	return code
}

// IsRegion reports whether region is a known region.
func (c *Catalog) IsRegion(region string) bool {
	return slices.ContainsFunc(c.Regions, func(r string) bool { return strings.EqualFold(r, region) })
}

// IsCertification reports whether cert is a known certification.
func (c *Catalog) IsCertification(cert string) bool {
	return slices.ContainsFunc(c.Certifications, func(x string) bool { return strings.EqualFold(x, cert) })
}

// CompanySizePhrase maps a company size band to natural phrasing.
func (c *Catalog) CompanySizePhrase(size core.CompanySize) (string, bool) {
	p, ok := c.CompanySizes[string(size)]
	return p, ok && p != ""
}

// YearsInOperationPhrase maps a years-in-operation band to natural phrasing.
func (c *Catalog) YearsInOperationPhrase(years core.YearsInOperation) (string, bool) {
	p, ok := c.YearsInOperation[string(years)]
	return p, ok && p != ""
}

// KeywordSuggestions returns suggested profile keywords for a sector.
func (c *Catalog) KeywordSuggestions(sector string) []string {
	for code, kws := range c.KeywordSuggestionsBySector {
		if strings.EqualFold(code, sector) {
			return slices.Clone(kws)
		}
	}
	return nil
}

// UnknownTerms lists the profile's sectors, regions and certifications
// that the catalog does not know, prefixed by their kind.
func (c *Catalog) UnknownTerms(p *core.Profile) []string {
	var unknown []string
	sectors := append([]string{p.PrimarySector}, p.ActiveSectors...)
	for _, s := range sectors {
		if s == "" {
			continue
		}
		if _, ok := c.Sector(s); !ok {
			unknown = append(unknown, "sector:"+s)
		}
	}
	for _, r := range p.PreferredRegions {
		if !c.IsRegion(r) {
			unknown = append(unknown, "region:"+r)
		}
	}
	for _, cert := range p.Certifications {
		if !c.IsCertification(cert) {
			unknown = append(unknown, "certification:"+cert)
		}
	}
	return unknown
}

// StripTitlePreamble removes an issuer or boilerplate preamble from a tender title.
// Rules are tried in order and the first match wins. The trimmed title is
// returned verbatim when no rule matches, or when the winning rule leaves
// nothing after the preamble.
func (c *Catalog) StripTitlePreamble(title string) string {
	title = strings.TrimSpace(title)
	for _, re := range c.preambles {
		m := re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		if rest := strings.TrimSpace(m[1]); rest != "" {
			return rest
		}
		return title
	}
	return title
}
