package dto

// SetTagsDTO replaces the full tag set of an entry (PUT .../tags).
type SetTagsDTO struct {
	TagIDs []int64 `json:"tag_ids" binding:"required"`
}

// FeatureLinkDTO attaches or revises one feature link (POST/PATCH
// .../features/:id). Rating is validated against 1-5 in the service before
// any mutation happens.
type FeatureLinkDTO struct {
	Rating int     `json:"rating" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// SetFeaturesDTO replaces the full feature set of an entry (PUT .../features).
type SetFeaturesDTO struct {
	Features []SetFeatureItemDTO `json:"features" binding:"required"`
}

type SetFeatureItemDTO struct {
	FeatureID int64   `json:"feature_id" binding:"required"`
	Rating    int     `json:"rating" binding:"required"`
	Notes     *string `json:"notes,omitempty"`
}
