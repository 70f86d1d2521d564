package models

// Location is a shared reference entity. Multiple customers may point at the
// same row; identity for dedup purposes is the case-insensitive name, not
// the surrogate id.
type Location struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// LocationRequest is the body for location create/update. On create any
// caller-supplied id is ignored; on update a blank name keeps the stored one.
type LocationRequest struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}
