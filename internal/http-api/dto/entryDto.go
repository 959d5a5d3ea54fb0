package dto

import (
	"accesshub/internal/http-api/models"

	"gorm.io/datatypes"
)

// EntryDTO is the shared payload for entry create (POST /api/:category) and
// partial update (PATCH /api/:category/:id). Pointer fields distinguish
// "not provided" from a real value; fields of other categories are ignored.
type EntryDTO struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Photos      *[]string `json:"photos,omitempty"`

	OverallRating   *int `json:"overall_rating,omitempty"`
	VisualRating    *int `json:"visual_rating,omitempty"`
	AuditoryRating  *int `json:"auditory_rating,omitempty"`
	MotorRating     *int `json:"motor_rating,omitempty"`
	CognitiveRating *int `json:"cognitive_rating,omitempty"`

	Website *string `json:"website,omitempty"`

	// game
	Platforms   *[]string `json:"platforms,omitempty"`
	Publisher   *string   `json:"publisher,omitempty"`
	Developer   *string   `json:"developer,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	Genres      *[]string `json:"genres,omitempty"`

	// hardware
	Manufacturer  *string   `json:"manufacturer,omitempty"`
	Model         *string   `json:"model,omitempty"`
	ProductType   *string   `json:"product_type,omitempty"`
	Compatibility *[]string `json:"compatibility,omitempty"`

	// place
	Address              *string  `json:"address,omitempty"`
	City                 *string  `json:"city,omitempty"`
	Country              *string  `json:"country,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	PlaceType            *string  `json:"place_type,omitempty"`
	WheelchairAccessible *bool    `json:"wheelchair_accessible,omitempty"`
	BrailleSignage       *bool    `json:"braille_signage,omitempty"`
	HearingLoop          *bool    `json:"hearing_loop,omitempty"`

	// software (shares Platforms with game)
	Version             *string `json:"version,omitempty"`
	SoftwareType        *string `json:"software_type,omitempty"`
	ScreenReaderSupport *bool   `json:"screen_reader_support,omitempty"`
	KeyboardNavigation  *bool   `json:"keyboard_navigation,omitempty"`
	HighContrast        *bool   `json:"high_contrast,omitempty"`

	// service
	ServiceType         *string   `json:"service_type,omitempty"`
	Provider            *string   `json:"provider,omitempty"`
	Availability        *[]string `json:"availability,omitempty"`
	RemoteSupport       *bool     `json:"remote_support,omitempty"`
	SignLanguageSupport *bool     `json:"sign_language_support,omitempty"`
}

// ApplyTo copies the provided fields onto the entry. The caller picked the
// concrete entry type from the URL category, so only the matching
// category-specific fields land anywhere.
func (d EntryDTO) ApplyTo(e models.Entry) {
	c := e.Core()
	if d.Name != nil {
		c.Name = *d.Name
	}
	if d.Description != nil {
		c.Description = *d.Description
	}
	if d.Photos != nil {
		c.Photos = datatypes.JSONSlice[string](*d.Photos)
	}
	if d.OverallRating != nil {
		c.OverallRating = *d.OverallRating
	}
	if d.VisualRating != nil {
		c.VisualRating = d.VisualRating
	}
	if d.AuditoryRating != nil {
		c.AuditoryRating = d.AuditoryRating
	}
	if d.MotorRating != nil {
		c.MotorRating = d.MotorRating
	}
	if d.CognitiveRating != nil {
		c.CognitiveRating = d.CognitiveRating
	}
	if d.Website != nil {
		c.Website = d.Website
	}

	switch entry := e.(type) {
	case *models.Game:
		if d.Platforms != nil {
			entry.Platforms = datatypes.JSONSlice[string](*d.Platforms)
		}
		if d.Publisher != nil {
			entry.Publisher = d.Publisher
		}
		if d.Developer != nil {
			entry.Developer = d.Developer
		}
		if d.ReleaseYear != nil {
			entry.ReleaseYear = d.ReleaseYear
		}
		if d.Genres != nil {
			entry.Genres = datatypes.JSONSlice[string](*d.Genres)
		}
	case *models.Hardware:
		if d.Manufacturer != nil {
			entry.Manufacturer = *d.Manufacturer
		}
		if d.Model != nil {
			entry.Model = *d.Model
		}
		if d.ProductType != nil {
			entry.ProductType = *d.ProductType
		}
		if d.Compatibility != nil {
			entry.Compatibility = datatypes.JSONSlice[string](*d.Compatibility)
		}
	case *models.Place:
		if d.Address != nil {
			entry.Address = *d.Address
		}
		if d.City != nil {
			entry.City = *d.City
		}
		if d.Country != nil {
			entry.Country = *d.Country
		}
		if d.Latitude != nil {
			entry.Latitude = d.Latitude
		}
		if d.Longitude != nil {
			entry.Longitude = d.Longitude
		}
		if d.PlaceType != nil {
			entry.PlaceType = *d.PlaceType
		}
		if d.WheelchairAccessible != nil {
			entry.WheelchairAccessible = *d.WheelchairAccessible
		}
		if d.BrailleSignage != nil {
			entry.BrailleSignage = *d.BrailleSignage
		}
		if d.HearingLoop != nil {
			entry.HearingLoop = *d.HearingLoop
		}
	case *models.Software:
		if d.Platforms != nil {
			entry.Platforms = datatypes.JSONSlice[string](*d.Platforms)
		}
		if d.Version != nil {
			entry.Version = *d.Version
		}
		if d.SoftwareType != nil {
			entry.SoftwareType = *d.SoftwareType
		}
		if d.ScreenReaderSupport != nil {
			entry.ScreenReaderSupport = *d.ScreenReaderSupport
		}
		if d.KeyboardNavigation != nil {
			entry.KeyboardNavigation = *d.KeyboardNavigation
		}
		if d.HighContrast != nil {
			entry.HighContrast = *d.HighContrast
		}
	case *models.Service:
		if d.ServiceType != nil {
			entry.ServiceType = *d.ServiceType
		}
		if d.Provider != nil {
			entry.Provider = *d.Provider
		}
		if d.Availability != nil {
			entry.Availability = datatypes.JSONSlice[string](*d.Availability)
		}
		if d.RemoteSupport != nil {
			entry.RemoteSupport = *d.RemoteSupport
		}
		if d.SignLanguageSupport != nil {
			entry.SignLanguageSupport = *d.SignLanguageSupport
		}
	}
}

// EntryResponse wraps an entry with its category so mixed-category listings
// stay self-describing.
type EntryResponse struct {
	Category models.Category `json:"category"`
	Entry    models.Entry    `json:"entry"`
}

func FromEntry(e models.Entry) EntryResponse {
	return EntryResponse{Category: e.Category(), Entry: e}
}

func FromEntries(entries []models.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
