package session

import (
	"fmt"
	"sort"
	"sync"
)

// Recognized budget tiers
const (
	TierBudget = "budget"
	TierMid    = "mid"
	TierLuxe   = "luxe"
)

// Preference keys accepted by Set
const (
	KeyBudgetLevel = "budget_level"
	KeyInterests   = "interests"
	KeyHomeCity    = "home_city"
	KeyLanguage    = "language"
)

// Preferences is an in-memory traveler preference store. It is mutable shared
// state read by the dispatch routing step, so all access is serialized.
type Preferences struct {
	mu          sync.RWMutex
	budgetLevel string
	interests   map[string]struct{}
	homeCity    string
	language    string
}

// NewPreferences creates a store with the documented defaults.
func NewPreferences() *Preferences {
	return &Preferences{
		budgetLevel: TierMid,
		interests:   make(map[string]struct{}),
		language:    "en",
	}
}

// Set applies a batch of updates and returns the resulting snapshot.
// Unknown keys are rejected: the whole batch fails and nothing is applied,
// so the model sees the typo and can correct the call. Known keys replace the
// stored value wholesale, except interests which is additive.
func (p *Preferences) Set(updates map[string]interface{}) (map[string]interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Validate and convert the whole batch before touching state, so a bad
	// value anywhere leaves every field as it was.
	var staged struct {
		budgetLevel *string
		homeCity    *string
		language    *string
		interests   []string
	}
	for key, raw := range updates {
		switch key {
		case KeyBudgetLevel:
			tier, err := asString(key, raw)
			if err != nil {
				return nil, err
			}
			if tier != TierBudget && tier != TierMid && tier != TierLuxe {
				return nil, fmt.Errorf("budget_level must be one of budget|mid|luxe, got %q", tier)
			}
			staged.budgetLevel = &tier
		case KeyHomeCity:
			city, err := asString(key, raw)
			if err != nil {
				return nil, err
			}
			staged.homeCity = &city
		case KeyLanguage:
			lang, err := asString(key, raw)
			if err != nil {
				return nil, err
			}
			staged.language = &lang
		case KeyInterests:
			added, err := asStringSlice(key, raw)
			if err != nil {
				return nil, err
			}
			staged.interests = added
		default:
			return nil, fmt.Errorf("unknown preference key: %q (known keys: budget_level, interests, home_city, language)", key)
		}
	}

	if staged.budgetLevel != nil {
		p.budgetLevel = *staged.budgetLevel
	}
	if staged.homeCity != nil {
		p.homeCity = *staged.homeCity
	}
	if staged.language != nil {
		p.language = *staged.language
	}
	for _, interest := range staged.interests {
		p.interests[interest] = struct{}{}
	}

	return p.snapshotLocked(), nil
}

// ClearInterests empties the interest set. Interests are otherwise additive.
func (p *Preferences) ClearInterests() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interests = make(map[string]struct{})
}

// Get returns the value for a known key, or def when the key is unknown or
// the stored value is empty.
func (p *Preferences) Get(key string, def interface{}) interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch key {
	case KeyBudgetLevel:
		return p.budgetLevel
	case KeyLanguage:
		return p.language
	case KeyHomeCity:
		if p.homeCity == "" {
			return def
		}
		return p.homeCity
	case KeyInterests:
		return p.interestsLocked()
	}
	return def
}

// BudgetLevel returns the stored tier.
func (p *Preferences) BudgetLevel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.budgetLevel
}

// Snapshot returns the full preference mapping.
func (p *Preferences) Snapshot() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

func (p *Preferences) snapshotLocked() map[string]interface{} {
	snap := map[string]interface{}{
		KeyBudgetLevel: p.budgetLevel,
		KeyInterests:   p.interestsLocked(),
		KeyLanguage:    p.language,
	}
	if p.homeCity != "" {
		snap[KeyHomeCity] = p.homeCity
	}
	return snap
}

func (p *Preferences) interestsLocked() []string {
	interests := make([]string, 0, len(p.interests))
	for interest := range p.interests {
		interests = append(interests, interest)
	}
	sort.Strings(interests)
	return interests
}

func asString(key string, raw interface{}) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}

func asStringSlice(key string, raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case string:
		return []string{v}, nil
	case []interface{}:
		// JSON-decoded tool arguments arrive as []interface{}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must contain only strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must be a list of strings, got %T", key, raw)
}
