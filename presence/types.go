package presence

import "time"

// PresenceType is a user's current activity kind.
type PresenceType int

// Presence types reported by the service.
const (
	Offline   PresenceType = 0
	Online    PresenceType = 1
	InGame    PresenceType = 2
	InStudio  PresenceType = 3
	Invisible PresenceType = 4
)

// String implements fmt.Stringer.
func (p PresenceType) String() string {
	switch p {
	case Offline:
		return "Offline"
	case Online:
		return "Online"
	case InGame:
		return "InGame"
	case InStudio:
		return "InStudio"
	case Invisible:
		return "Invisible"
	default:
		return "Unknown"
	}
}

// UserPresence is one user's presence snapshot. PlaceID is nil when the
// user is not in a game, or when the caller lacks permission to see it.
type UserPresence struct {
	UserID       int64
	Type         PresenceType
	LastLocation string
	PlaceID      *int64
	LastOnline   time.Time
}

type presenceRequest struct {
	UserIDs []int64 `json:"userIds"`
}

type presenceResponse struct {
	UserPresences []userPresenceRaw `json:"userPresences"`
}

type userPresenceRaw struct {
	UserPresenceType int       `json:"userPresenceType"`
	LastLocation     string    `json:"lastLocation"`
	PlaceID          *int64    `json:"placeId"`
	UserID           int64     `json:"userId"`
	LastOnline       time.Time `json:"lastOnline"`
}
