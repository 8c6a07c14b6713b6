package domain

import (
	"time"
)

// Place is a user-contributed point of interest.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    GeoPoint  `json:"coordinates"`
	Tags        []string  `json:"tags"`
	Owners      []string  `json:"owners"`
	Description string    `json:"description,omitempty"`
	DistanceKm  *float64  `json:"distance_km,omitempty"` // computed field
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedBy reports whether userID is one of the place owners.
func (p *Place) OwnedBy(userID string) bool {
	for _, o := range p.Owners {
		if o == userID {
			return true
		}
	}
	return false
}

// HasTag reports exact membership of tag in the place tag list.
func (p *Place) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Route is an ordered list of places.
type Route struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Places      []string  `json:"places"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Feedback is a grade left by a user for a place or a route.
// Exactly one of PlaceID and RouteID is set.
type Feedback struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id,omitempty"`
	RouteID   string    `json:"route_id,omitempty"`
	UserID    string    `json:"user_id"`
	Grade     int       `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackTarget distinguishes place feedback from route feedback.
type FeedbackTarget string

const (
	TargetPlace FeedbackTarget = "place"
	TargetRoute FeedbackTarget = "route"
)

// FavoriteKind classifies a favorite place for its user.
type FavoriteKind string

const (
	FavoriteHome          FavoriteKind = "HOME"
	FavoriteWork          FavoriteKind = "WORK"
	FavoriteEntertainment FavoriteKind = "ENTERTAINMENT"
)

// Valid reports whether k is one of the known kinds.
func (k FavoriteKind) Valid() bool {
	switch k {
	case FavoriteHome, FavoriteWork, FavoriteEntertainment:
		return true
	}
	return false
}

// Favorite marks a place as a favorite of a user.
type Favorite struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	PlaceID   string       `json:"place_id"`
	Kind      FavoriteKind `json:"favorite_type"`
	CreatedAt time.Time    `json:"created_at"`
}

// Role is the authorization role carried in access tokens.
type Role string

const (
	RoleOwner Role = "OWNER"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleUser
}

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Identity is the caller identity derived from an access token.
type Identity struct {
	UserID string
	Login  string
	Role   Role
}
