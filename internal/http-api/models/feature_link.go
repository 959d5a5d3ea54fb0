package models

// FeatureLink is the read-side projection of an entry's linked feature:
// the feature record joined with the entry-specific rating and notes.
type FeatureLink struct {
	AccessibilityFeature
	Rating int     `json:"rating"`
	Notes  *string `json:"notes,omitempty"`
}
