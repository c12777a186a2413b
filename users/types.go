package users

import "time"

// AuthenticatedUser is the account behind the client's session cookie.
type AuthenticatedUser struct {
	ID          int64
	Username    string
	DisplayName string
}

// UserDetails is a user's public profile.
type UserDetails struct {
	ID          int64
	Username    string
	DisplayName string
	Description string
	CreatedAt   time.Time
	IsBanned    bool
}

// UserSummary is the compact user shape returned by search and username
// resolution.
type UserSummary struct {
	ID          int64
	Username    string
	DisplayName string
}

type authenticatedUserRaw struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type userDetailsRaw struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	IsBanned    bool      `json:"isBanned"`
}

type userSearchRaw struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type usernamesRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernamesResponse struct {
	Data []userSearchRaw `json:"data"`
}
