package models

import "strings"

// IsComplete decides whether an entry has enough fields filled in to be
// flagged complete. Common requirements: name, description and website
// non-blank, all four per-dimension ratings recorded, an overall rating,
// and at least one photo. Each category then adds its own required fields
// (see categoryComplete on the entry types).
//
// Tag and feature links are not part of the predicate: an entry always
// carries a link set (possibly empty), so they contribute nothing to
// "filled in enough".
func IsComplete(e Entry) bool {
	c := e.Core()

	if !notBlank(c.Name) || !notBlank(c.Description) {
		return false
	}
	if len(c.Photos) == 0 {
		return false
	}
	if c.OverallRating == 0 {
		return false
	}
	if c.VisualRating == nil || c.AuditoryRating == nil ||
		c.MotorRating == nil || c.CognitiveRating == nil {
		return false
	}
	if c.Website == nil || !notBlank(*c.Website) {
		return false
	}

	return e.categoryComplete()
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
