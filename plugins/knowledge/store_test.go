package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	return &Document{
		Cities: map[string]City{
			"Dubai": {
				TopAttractions: []string{"Burj Khalifa", "Dubai Mall", "Palm Jumeirah"},
				CulturalTips:   []string{"Dress modestly in public areas", "Friday brunch is a local tradition"},
			},
			"Abu Dhabi": {
				TopAttractions: []string{"Sheikh Zayed Grand Mosque", "Louvre Abu Dhabi"},
				CulturalTips:   []string{"Dress modestly in public areas", "Remove shoes before entering a mosque"},
			},
		},
		Activities: map[string][]string{
			"adventure":  {"Dune bashing in the desert", "Jebel Jais zipline"},
			"culture":    {"Old Dubai walking tour"},
			"relaxation": {"Beach day at JBR", "Spa retreats in Ras Al Khaimah"},
		},
		GeneralInfo: map[string]string{
			"currency": "UAE Dirham (AED)",
			"language": "Arabic (English widely spoken)",
		},
	}
}

func TestStore_CityAttractions(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("What are the top attractions in Dubai?")
	assert.Equal(t, "Dubai", res.City)
	// Verbatim, order preserved.
	assert.Equal(t, []string{"Burj Khalifa", "Dubai Mall", "Palm Jumeirah"}, res.TopAttractions)
}

func TestStore_RakAlias(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("things to do in RAK")
	assert.Equal(t, "Ras Al Khaimah", res.City)
	assert.Equal(t, []string{"Spa retreats in Ras Al Khaimah"}, res.TopAttractions)
}

func TestStore_RakWithoutRelaxationData(t *testing.T) {
	doc := testDocument()
	doc.Activities["relaxation"] = []string{"Beach day at JBR"}
	store := NewStore(doc)

	res := store.Search("places to visit in rak")
	assert.Equal(t, []string{"Beach resorts in Ras Al Khaimah"}, res.TopAttractions)
}

func TestStore_CulturalTipsForCity(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("any cultural tips for Abu Dhabi?")
	assert.Equal(t, "Abu Dhabi", res.City)
	assert.Equal(t, []string{"Dress modestly in public areas", "Remove shoes before entering a mosque"}, res.CulturalTips)
}

func TestStore_CulturalTipsDeduplicated(t *testing.T) {
	store := NewStore(testDocument())

	// No city mentioned: tips from all cities, deduplicated, stable order.
	res := store.Search("how should I dress?")
	assert.Equal(t, "general", res.City)
	assert.Equal(t, []string{
		"Dress modestly in public areas",
		"Remove shoes before entering a mosque",
		"Friday brunch is a local tradition",
	}, res.CulturalTips)
}

func TestStore_GeneralInfo(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("what currency do they use?")
	assert.Equal(t, "UAE Dirham (AED)", res.GeneralInfo["currency"])
	assert.Empty(t, res.City)
}

func TestStore_ActivityBucket(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("looking for some adventure")
	assert.Equal(t, []string{"Dune bashing in the desert", "Jebel Jais zipline"}, res.Activities["adventure"])
}

func TestStore_UnmatchedReturnsFullDocument(t *testing.T) {
	store := NewStore(testDocument())

	res := store.Search("tell me something nice")
	assert.Len(t, res.Cities, 2)
	assert.NotEmpty(t, res.Activities)
	assert.NotEmpty(t, res.GeneralInfo)
}

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"cities": {"Dubai": {"top_attractions": ["Burj Khalifa"], "cultural_tips": []}},
			"activities": {"adventure": []},
			"general_info": {"currency": "AED"}
		}`), 0o644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Contains(t, doc.Cities, "Dubai")
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cities": [`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("NoCities", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cities": {}}`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
