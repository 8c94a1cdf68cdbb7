package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferences_Defaults(t *testing.T) {
	prefs := NewPreferences()

	assert.Equal(t, "mid", prefs.Get(KeyBudgetLevel, ""))
	assert.Equal(t, "en", prefs.Get(KeyLanguage, ""))
	assert.Equal(t, "none", prefs.Get(KeyHomeCity, "none"))
	assert.Empty(t, prefs.Get(KeyInterests, nil))
}

func TestPreferences_SetAndGet(t *testing.T) {
	prefs := NewPreferences()

	snap, err := prefs.Set(map[string]interface{}{"budget_level": "luxe"})
	assert.NoError(t, err)
	assert.Equal(t, "luxe", snap["budget_level"])
	assert.Equal(t, "luxe", prefs.Get(KeyBudgetLevel, ""))
}

func TestPreferences_RejectsUnknownKey(t *testing.T) {
	prefs := NewPreferences()

	_, err := prefs.Set(map[string]interface{}{
		"budget_level": "luxe",
		"favourite":    "falafel",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preference key")

	// The batch is atomic: the valid key must not have been applied either.
	assert.Equal(t, "mid", prefs.Get(KeyBudgetLevel, ""))
}

func TestPreferences_RejectsInvalidValueAtomically(t *testing.T) {
	prefs := NewPreferences()

	// A type error on any key must leave the whole batch unapplied,
	// regardless of map iteration order.
	invalid := []map[string]interface{}{
		{"budget_level": "luxe", "interests": 42},
		{"budget_level": "luxe", "home_city": 7},
		{"language": []string{"en"}, "budget_level": "luxe"},
		{"interests": []interface{}{"beaches", 3}, "budget_level": "luxe"},
	}

	for _, updates := range invalid {
		_, err := prefs.Set(updates)
		assert.Error(t, err)
		assert.Equal(t, "mid", prefs.BudgetLevel())
		assert.Empty(t, prefs.Get(KeyInterests, nil))
		assert.Equal(t, "en", prefs.Get(KeyLanguage, ""))
		assert.Equal(t, "", prefs.Get(KeyHomeCity, ""))
	}
}

func TestPreferences_RejectsInvalidTier(t *testing.T) {
	prefs := NewPreferences()

	_, err := prefs.Set(map[string]interface{}{"budget_level": "platinum"})
	assert.Error(t, err)
	assert.Equal(t, "mid", prefs.Get(KeyBudgetLevel, ""))
}

func TestPreferences_InterestsAdditive(t *testing.T) {
	prefs := NewPreferences()

	_, err := prefs.Set(map[string]interface{}{"interests": []interface{}{"desert safari", "museums"}})
	assert.NoError(t, err)

	_, err = prefs.Set(map[string]interface{}{"interests": "beaches"})
	assert.NoError(t, err)

	interests := prefs.Get(KeyInterests, nil).([]string)
	assert.Equal(t, []string{"beaches", "desert safari", "museums"}, interests)

	prefs.ClearInterests()
	assert.Empty(t, prefs.Get(KeyInterests, nil))
}

func TestPreferences_HomeCityReplaced(t *testing.T) {
	prefs := NewPreferences()

	_, err := prefs.Set(map[string]interface{}{"home_city": "Sharjah"})
	assert.NoError(t, err)
	_, err = prefs.Set(map[string]interface{}{"home_city": "Dubai"})
	assert.NoError(t, err)

	assert.Equal(t, "Dubai", prefs.Get(KeyHomeCity, ""))
	snap := prefs.Snapshot()
	assert.Equal(t, "Dubai", snap["home_city"])
}

func TestMemory_AppendOrder(t *testing.T) {
	mem := NewMemory()
	mem.Append(Turn{Role: RoleUser, Content: "hello"})
	mem.Append(Turn{Role: RoleAssistant, Content: "hi there", ToolUsed: "search_knowledge"})

	turns := mem.Turns()
	assert.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, "search_knowledge", turns[1].ToolUsed)

	rendered := mem.Render()
	assert.Contains(t, rendered, "User: hello")
	assert.Contains(t, rendered, "Assistant (used search_knowledge): hi there")
}

func TestMemory_EmptyRender(t *testing.T) {
	mem := NewMemory()
	assert.Equal(t, "(no prior conversation)", mem.Render())
	assert.Zero(t, mem.Len())
}

func TestNewSession_DisjointState(t *testing.T) {
	a := New()
	b := New()

	assert.NotEqual(t, a.ID, b.ID)

	_, err := a.Prefs.Set(map[string]interface{}{"budget_level": "budget"})
	assert.NoError(t, err)
	assert.Equal(t, "mid", b.Prefs.Get(KeyBudgetLevel, ""))

	a.Memory.Append(Turn{Role: RoleUser, Content: "only in a"})
	assert.Zero(t, b.Memory.Len())
}
