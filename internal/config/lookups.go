package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"supplierwatch/internal/domain"
)

//go:embed lookups/activity_categories.yaml
var defaultActivityLookupYAML []byte

type activityLookupFile struct {
	Categories []struct {
		Prefix   string `yaml:"prefix"`
		Category string `yaml:"category"`
	} `yaml:"categories"`
	SectorThresholds map[string]string `yaml:"sector_thresholds"`
	SubjectKeywords  []struct {
		Keyword  string `yaml:"keyword"`
		Category string `yaml:"category"`
	} `yaml:"subject_keywords"`
}

// ActivityLookup is the loaded, queryable form of the curated CNAE lookup
// asset, satisfying ruleengine.ActivityLookup.
type ActivityLookup struct {
	prefixToCategory []prefixCategory
	sectorThreshold  map[string]domain.Money
	keywordToCategory []keywordCategory
}

type prefixCategory struct {
	prefix   string
	category string
}

type keywordCategory struct {
	keyword  string
	category string
}

// LoadActivityLookup reads the curated lookup YAML. An empty path loads the
// asset embedded at build time.
func LoadActivityLookup(path string) (*ActivityLookup, error) {
	raw := defaultActivityLookupYAML
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read activity lookup: %w", err)
		}
		raw = data
	}
	var file activityLookupFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("config: parse activity lookup: %w", err)
	}

	lookup := &ActivityLookup{
		sectorThreshold: make(map[string]domain.Money, len(file.SectorThresholds)),
	}
	for _, c := range file.Categories {
		lookup.prefixToCategory = append(lookup.prefixToCategory, prefixCategory{prefix: c.Prefix, category: c.Category})
	}
	for sector, amount := range file.SectorThresholds {
		money, err := parseDecimalMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("config: sector threshold %q: %w", sector, err)
		}
		lookup.sectorThreshold[sector] = money
	}
	for _, k := range file.SubjectKeywords {
		lookup.keywordToCategory = append(lookup.keywordToCategory, keywordCategory{keyword: strings.ToLower(k.Keyword), category: k.Category})
	}
	return lookup, nil
}

// CategoryFor implements ruleengine.ActivityLookup.
func (l *ActivityLookup) CategoryFor(code domain.CNAECode) (string, bool) {
	s := string(code)
	best := ""
	bestLen := -1
	for _, pc := range l.prefixToCategory {
		if strings.HasPrefix(s, pc.prefix) && len(pc.prefix) > bestLen {
			best = pc.category
			bestLen = len(pc.prefix)
		}
	}
	if bestLen < 0 {
		return "", false
	}
	return best, true
}

// SectorThreshold implements ruleengine.ActivityLookup.
func (l *ActivityLookup) SectorThreshold(category string) (domain.Money, bool) {
	m, ok := l.sectorThreshold[category]
	return m, ok
}

// SubjectCategory implements ruleengine.ActivityLookup.
func (l *ActivityLookup) SubjectCategory(subject string) (string, bool) {
	lower := strings.ToLower(subject)
	for _, kc := range l.keywordToCategory {
		if strings.Contains(lower, kc.keyword) {
			return kc.category, true
		}
	}
	return "", false
}

func parseDecimalMoney(s string) (domain.Money, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 2)
	units, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return domain.Money{}, err
	}
	var cents int64
	if len(parts) == 2 {
		fraction := (parts[1] + "00")[:2]
		c, err := strconv.ParseInt(fraction, 10, 64)
		if err != nil {
			return domain.Money{}, err
		}
		cents = c
	}
	return domain.NewMoney(units, cents)
}
