package models

// SitterCandidate is a sitter eligible for assignment, as surfaced by the
// user directory. The directory owns the full sitter profile; this is the
// slice of it that scoring consumes.
type SitterCandidate struct {
	ID              string   `bson:"id" json:"id"`
	DisplayName     string   `bson:"display_name,omitempty" json:"displayName,omitempty"`
	Rating          float64  `bson:"rating" json:"rating"` // 0-5
	TotalBookings   int      `bson:"total_bookings" json:"totalBookings"`
	IsActive        bool     `bson:"is_active" json:"isActive"`
	HasLocationData bool     `bson:"has_location_data" json:"hasLocationData"`
	Preferred       bool     `bson:"preferred,omitempty" json:"preferred,omitempty"`
	PetTypes        []string `bson:"pet_types,omitempty" json:"petTypes,omitempty"`
}
