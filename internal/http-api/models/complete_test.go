package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// completeGame builds a game that passes every completeness check.
func completeGame() *Game {
	return &Game{
		EntryCore: EntryCore{
			Name:            "Celeste",
			Description:     "Precision platformer with a full assist mode.",
			Photos:          datatypes.JSONSlice[string]{"photos/celeste-1.png"},
			OverallRating:   5,
			VisualRating:    intPtr(5),
			AuditoryRating:  intPtr(4),
			MotorRating:     intPtr(3),
			CognitiveRating: intPtr(5),
			Website:         strPtr("https://celeste.game"),
		},
		Platforms: datatypes.JSONSlice[string]{"PC"},
	}
}

func TestIsCompleteGame(t *testing.T) {
	t.Run("all fields filled", func(t *testing.T) {
		assert.True(t, IsComplete(completeGame()))
	})

	t.Run("empty platforms fails", func(t *testing.T) {
		g := completeGame()
		g.Platforms = datatypes.JSONSlice[string]{}
		assert.False(t, IsComplete(g))
	})

	t.Run("no photos fails regardless of other fields", func(t *testing.T) {
		g := completeGame()
		g.Photos = nil
		assert.False(t, IsComplete(g))
	})

	t.Run("missing dimension rating fails", func(t *testing.T) {
		g := completeGame()
		g.MotorRating = nil
		assert.False(t, IsComplete(g))
	})

	t.Run("blank website fails", func(t *testing.T) {
		g := completeGame()
		g.Website = strPtr("   ")
		assert.False(t, IsComplete(g))

		g.Website = nil
		assert.False(t, IsComplete(g))
	})

	t.Run("whitespace-only description fails", func(t *testing.T) {
		g := completeGame()
		g.Description = "  \t "
		assert.False(t, IsComplete(g))
	})
}

func TestIsCompletePlace(t *testing.T) {
	place := func() *Place {
		return &Place{
			EntryCore: EntryCore{
				Name:            "Central Library",
				Description:     "Public library with step-free access.",
				Photos:          datatypes.JSONSlice[string]{"photos/library.jpg"},
				OverallRating:   4,
				VisualRating:    intPtr(4),
				AuditoryRating:  intPtr(4),
				MotorRating:     intPtr(5),
				CognitiveRating: intPtr(4),
				Website:         strPtr("https://library.example.org"),
			},
			Address:   "1 Main St",
			City:      "Springfield",
			PlaceType: "library",
		}
	}

	t.Run("complete place", func(t *testing.T) {
		assert.True(t, IsComplete(place()))
	})

	t.Run("missing city fails even with everything else present", func(t *testing.T) {
		p := place()
		p.City = ""
		assert.False(t, IsComplete(p))
	})

	t.Run("missing place type fails", func(t *testing.T) {
		p := place()
		p.PlaceType = ""
		assert.False(t, IsComplete(p))
	})
}

func TestIsCompleteOtherCategories(t *testing.T) {
	core := EntryCore{
		Name:            "Thing",
		Description:     "A thing.",
		Photos:          datatypes.JSONSlice[string]{"photos/thing.png"},
		OverallRating:   3,
		VisualRating:    intPtr(3),
		AuditoryRating:  intPtr(3),
		MotorRating:     intPtr(3),
		CognitiveRating: intPtr(3),
		Website:         strPtr("https://example.com"),
	}

	t.Run("hardware requires manufacturer, model and product type", func(t *testing.T) {
		h := &Hardware{EntryCore: core, Manufacturer: "Acme", Model: "X1", ProductType: "controller"}
		assert.True(t, IsComplete(h))

		h.Model = ""
		assert.False(t, IsComplete(h))
	})

	t.Run("software requires platforms", func(t *testing.T) {
		s := &Software{EntryCore: core, Platforms: datatypes.JSONSlice[string]{"Windows"}}
		assert.True(t, IsComplete(s))

		s.Platforms = nil
		assert.False(t, IsComplete(s))
	})

	t.Run("service requires service type and provider", func(t *testing.T) {
		s := &Service{EntryCore: core, ServiceType: "interpreting", Provider: "SignCo"}
		assert.True(t, IsComplete(s))

		s.Provider = ""
		assert.False(t, IsComplete(s))
	})
}

func TestEditableBy(t *testing.T) {
	owner := "0c9a3a49-3a53-4a2b-86f7-93d11dd0a001"

	t.Run("owner can edit", func(t *testing.T) {
		c := &EntryCore{OwnerID: &owner}
		assert.True(t, c.EditableBy(owner))
	})

	t.Run("other users cannot edit owned entries", func(t *testing.T) {
		c := &EntryCore{OwnerID: &owner}
		assert.False(t, c.EditableBy("5f0f58a4-6f3a-4f64-bb1d-222222222222"))
	})

	t.Run("legacy entries without an owner are editable by anyone", func(t *testing.T) {
		c := &EntryCore{}
		assert.True(t, c.EditableBy("5f0f58a4-6f3a-4f64-bb1d-222222222222"))
	})
}
