package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// NormalizationConfig holds symptom alias and typo correction data
type NormalizationConfig struct {
	Aliases map[string]AliasEntry `json:"aliases"`
	Typos   map[string]string     `json:"typos"`
}

// AliasEntry maps lay phrasings of a symptom onto its canonical id
type AliasEntry struct {
	Canonical  string   `json:"canonical"`
	Alternates []string `json:"alternates"`
}

// NormalizedSymptom contains all normalized output
type NormalizedSymptom struct {
	Canonical    string
	DisplayName  string
	OriginalName string
}

// SymptomNormalizer maps free-text symptom input onto canonical ids
type SymptomNormalizer struct {
	config     *NormalizationConfig
	aliasIndex map[string]string
}

// NewSymptomNormalizer creates and initializes a new normalizer
func NewSymptomNormalizer(configPath string) (*SymptomNormalizer, error) {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config NormalizationConfig
	if err := json.Unmarshal(configFile, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return newSymptomNormalizer(&config), nil
}

func newSymptomNormalizer(config *NormalizationConfig) *SymptomNormalizer {
	index := make(map[string]string)
	for key, entry := range config.Aliases {
		index[canonicalKey(key)] = entry.Canonical
		index[canonicalKey(entry.Canonical)] = entry.Canonical
		for _, alt := range entry.Alternates {
			index[canonicalKey(alt)] = entry.Canonical
		}
	}

	return &SymptomNormalizer{
		config:     config,
		aliasIndex: index,
	}
}

// Normalize maps one raw symptom string to its canonical form
func (sn *SymptomNormalizer) Normalize(originalName string) *NormalizedSymptom {
	if strings.TrimSpace(originalName) == "" {
		return &NormalizedSymptom{
			Canonical:    "",
			DisplayName:  "",
			OriginalName: originalName,
		}
	}

	// Step 1: Correct typos
	corrected := sn.correctTypos(originalName)

	// Step 2: Strip parenthetical qualifiers ("fever (mild)" -> "fever")
	cleaned := stripQualifiers(corrected)

	// Step 3: Resolve aliases onto the canonical id
	canonical := canonicalKey(cleaned)
	if mapped, ok := sn.aliasIndex[canonical]; ok {
		canonical = mapped
	}

	return &NormalizedSymptom{
		OriginalName: originalName,
		Canonical:    canonical,
		DisplayName:  titleCase(strings.ReplaceAll(canonical, "_", " ")),
	}
}

// NormalizeAll normalizes a list of symptoms, dropping empties and
// deduplicating while preserving first-seen order
func (sn *SymptomNormalizer) NormalizeAll(names []string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, name := range names {
		normalized := sn.Normalize(name)
		if normalized.Canonical == "" || seen[normalized.Canonical] {
			continue
		}
		seen[normalized.Canonical] = true
		result = append(result, normalized.Canonical)
	}
	return result
}

// correctTypos fixes known spelling errors
func (sn *SymptomNormalizer) correctTypos(text string) string {
	result := text
	for typo, correct := range sn.config.Typos {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(typo) + `\b`)
		result = re.ReplaceAllString(result, correct)
	}
	return result
}

var (
	parenRe      = regexp.MustCompile(`\s*\(([^)]*)\)`)
	whitespaceRe = regexp.MustCompile(`[\s\-]+`)
)

func stripQualifiers(text string) string {
	return strings.TrimSpace(parenRe.ReplaceAllString(text, ""))
}

// canonicalKey lowercases and collapses separators so that
// "Sore Throat", "sore-throat" and "sore_throat" all agree
func canonicalKey(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	key = whitespaceRe.ReplaceAllString(key, "_")
	return key
}

func titleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
