// Package knowledge loads the UAE knowledge document and answers
// deterministic lookup queries over it.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// City holds the per-city knowledge entries
type City struct {
	TopAttractions []string `json:"top_attractions"`
	CulturalTips   []string `json:"cultural_tips"`
}

// Document is the knowledge base, loaded once per session and never mutated.
type Document struct {
	Cities      map[string]City     `json:"cities"`
	Activities  map[string][]string `json:"activities"`
	GeneralInfo map[string]string   `json:"general_info"`
}

// Result is the structured answer to a search query. Exactly the fields
// relevant to the matched rule are populated; an unmatched query returns the
// whole document so the model can compose an answer without inventing facts.
type Result struct {
	City           string              `json:"city,omitempty"`
	CulturalTips   []string            `json:"cultural_tips,omitempty"`
	TopAttractions []string            `json:"top_attractions,omitempty"`
	GeneralInfo    map[string]string   `json:"general_info,omitempty"`
	Activities     map[string][]string `json:"activities,omitempty"`
	Cities         map[string]City     `json:"cities,omitempty"`
}

// Load reads and validates the knowledge document. A missing or malformed
// document is fatal to session startup: the capability cannot be registered.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge document %s: %w", path, err)
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("knowledge document %s has no cities", path)
	}

	return &doc, nil
}

// Store answers lookup queries against a loaded document. Safe for concurrent
// readers: the document is never mutated after load.
type Store struct {
	doc *Document
}

// NewStore creates a store over a loaded document
func NewStore(doc *Document) *Store {
	return &Store{doc: doc}
}

var (
	culturalKeywords   = []string{"cultural tip", "culture tip", "dress", "ramadan"}
	attractionKeywords = []string{"attraction", "thing to do", "what can i do", "places to visit", "itinerary"}
	generalKeywords    = []string{"currency", "language", "best time", "transport", "metro"}
	activityBuckets    = []string{"adventure", "culture", "relaxation"}
)

// Search runs the fixed-priority rule chain over the document. It never fails
// for unmatched queries.
func (s *Store) Search(query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	city := s.detectCity(q)

	// 1. Cultural tips
	if containsAny(q, culturalKeywords) {
		if entry, ok := s.doc.Cities[city]; ok && len(entry.CulturalTips) > 0 {
			return Result{City: city, CulturalTips: entry.CulturalTips}
		}
		// Substitute: deduplicated cross-city tips rather than an empty result.
		label := city
		if label == "" {
			label = "general"
		}
		return Result{City: label, CulturalTips: s.allCulturalTips()}
	}

	// 2. Top attractions / things to do
	if containsAny(q, attractionKeywords) {
		if city == "Ras Al Khaimah" {
			recs := s.rakRelaxation()
			if len(recs) == 0 {
				recs = []string{"Beach resorts in Ras Al Khaimah"}
			}
			return Result{City: city, TopAttractions: recs}
		}
		if entry, ok := s.doc.Cities[city]; ok {
			return Result{City: city, TopAttractions: entry.TopAttractions}
		}
	}

	// 3. General info
	if containsAny(q, generalKeywords) {
		return Result{GeneralInfo: s.doc.GeneralInfo}
	}

	// 4. Activity buckets
	for _, bucket := range activityBuckets {
		if strings.Contains(q, bucket) {
			return Result{Activities: map[string][]string{bucket: s.doc.Activities[bucket]}}
		}
	}

	// Default: the whole (small) document.
	return Result{
		Cities:      s.doc.Cities,
		Activities:  s.doc.Activities,
		GeneralInfo: s.doc.GeneralInfo,
	}
}

// detectCity finds a known city mentioned in the query, with the common
// "rak" shorthand mapped to Ras Al Khaimah.
func (s *Store) detectCity(q string) string {
	for _, name := range s.cityNames() {
		if strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}
	if strings.Contains(q, "ras al khaimah") || strings.Contains(q, "rak") {
		return "Ras Al Khaimah"
	}
	return ""
}

// cityNames returns city names in a stable order so results are reproducible.
func (s *Store) cityNames() []string {
	names := make([]string, 0, len(s.doc.Cities))
	for name := range s.doc.Cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) allCulturalTips() []string {
	seen := make(map[string]struct{})
	var tips []string
	for _, name := range s.cityNames() {
		for _, tip := range s.doc.Cities[name].CulturalTips {
			if _, ok := seen[tip]; ok {
				continue
			}
			seen[tip] = struct{}{}
			tips = append(tips, tip)
		}
	}
	return tips
}

func (s *Store) rakRelaxation() []string {
	var recs []string
	for _, activity := range s.doc.Activities["relaxation"] {
		if strings.Contains(activity, "Ras Al Khaimah") {
			recs = append(recs, activity)
		}
	}
	return recs
}

func containsAny(q string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}
