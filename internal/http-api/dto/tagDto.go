package dto

// CreateTagDTO used for POST /api/tags. Creation is an upsert keyed by the
// slug of Name: colliding names return the existing tag.
type CreateTagDTO struct {
	Name              string  `json:"name" binding:"required,min=1,max=120"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType string  `json:"accessibility_type,omitempty"`
}

// UpdateTagDTO used for PATCH /api/tags/:id (partial updates allowed)
type UpdateTagDTO struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType *string `json:"accessibility_type,omitempty"`
}

// CreateFeatureDTO used for POST /api/features; same upsert semantics.
type CreateFeatureDTO struct {
	Name              string  `json:"name" binding:"required,min=1,max=120"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType string  `json:"accessibility_type,omitempty"`
}

// UpdateFeatureDTO used for PATCH /api/features/:id
type UpdateFeatureDTO struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType *string `json:"accessibility_type,omitempty"`
}
