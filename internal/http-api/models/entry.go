package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is implemented by all five category models.
type Entry interface {
	Core() *EntryCore
	Category() Category
	// categoryComplete reports whether the category-specific required
	// fields are filled in; IsComplete combines it with the common checks.
	categoryComplete() bool
}

// EntryCore holds the columns shared by all five entry tables.
type EntryCore struct {
	ID          int64                       `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID     *string                     `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Name        string                      `json:"name" gorm:"not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Photos      datatypes.JSONSlice[string] `json:"photos"`

	OverallRating   int  `json:"overall_rating" gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5"`
	VisualRating    *int `json:"visual_rating,omitempty"`
	AuditoryRating  *int `json:"auditory_rating,omitempty"`
	MotorRating     *int `json:"motor_rating,omitempty"`
	CognitiveRating *int `json:"cognitive_rating,omitempty"`

	Website *string `json:"website,omitempty"`

	// Complete is a cached projection of IsComplete, persisted on every
	// create and update. Never treat it as independent state.
	Complete bool `json:"complete" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// EditableBy reports whether the given user may mutate this entry.
// Entries created before ownership tracking have no owner recorded; those
// stay editable by any signed-in user (deliberate legacy behavior).
func (c *EntryCore) EditableBy(userID string) bool {
	if c.OwnerID == nil || *c.OwnerID == "" {
		return true
	}
	return *c.OwnerID == userID
}

type Game struct {
	EntryCore
	Platforms   datatypes.JSONSlice[string] `json:"platforms"`
	Publisher   *string                     `json:"publisher,omitempty"`
	Developer   *string                     `json:"developer,omitempty"`
	ReleaseYear *int                        `json:"release_year,omitempty"`
	Genres      datatypes.JSONSlice[string] `json:"genres"`
}

func (Game) TableName() string { return "games" }

func (g *Game) Core() *EntryCore    { return &g.EntryCore }
func (g *Game) Category() Category  { return CategoryGame }
func (g *Game) categoryComplete() bool {
	return len(g.Platforms) > 0
}

type Hardware struct {
	EntryCore
	Manufacturer  string                      `json:"manufacturer"`
	Model         string                      `json:"model"`
	ProductType   string                      `json:"product_type"`
	Compatibility datatypes.JSONSlice[string] `json:"compatibility"`
}

func (Hardware) TableName() string { return "hardware" }

func (h *Hardware) Core() *EntryCore   { return &h.EntryCore }
func (h *Hardware) Category() Category { return CategoryHardware }
func (h *Hardware) categoryComplete() bool {
	return notBlank(h.Manufacturer) && notBlank(h.Model) && notBlank(h.ProductType)
}

type Place struct {
	EntryCore
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	PlaceType string   `json:"place_type"`

	WheelchairAccessible bool `json:"wheelchair_accessible"`
	BrailleSignage       bool `json:"braille_signage"`
	HearingLoop          bool `json:"hearing_loop"`
}

func (Place) TableName() string { return "places" }

func (p *Place) Core() *EntryCore   { return &p.EntryCore }
func (p *Place) Category() Category { return CategoryPlace }
func (p *Place) categoryComplete() bool {
	return notBlank(p.Address) && notBlank(p.City) && notBlank(p.PlaceType)
}

type Software struct {
	EntryCore
	Platforms    datatypes.JSONSlice[string] `json:"platforms"`
	Version      string                      `json:"version"`
	SoftwareType string                      `json:"software_type"`

	ScreenReaderSupport bool `json:"screen_reader_support"`
	KeyboardNavigation  bool `json:"keyboard_navigation"`
	HighContrast        bool `json:"high_contrast"`
}

func (Software) TableName() string { return "software" }

func (s *Software) Core() *EntryCore   { return &s.EntryCore }
func (s *Software) Category() Category { return CategorySoftware }
func (s *Software) categoryComplete() bool {
	return len(s.Platforms) > 0
}

type Service struct {
	EntryCore
	ServiceType  string                      `json:"service_type"`
	Provider     string                      `json:"provider"`
	Availability datatypes.JSONSlice[string] `json:"availability"`

	RemoteSupport       bool `json:"remote_support"`
	SignLanguageSupport bool `json:"sign_language_support"`
}

func (Service) TableName() string { return "services" }

func (s *Service) Core() *EntryCore   { return &s.EntryCore }
func (s *Service) Category() Category { return CategoryService }
func (s *Service) categoryComplete() bool {
	return notBlank(s.ServiceType) && notBlank(s.Provider)
}
