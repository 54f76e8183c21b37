package api

import "time"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
}

// SignupRequest creates an account together with its character. Reason
// applies to enemies, Appearance and Personality to doctors.
type SignupRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Race         string `json:"race,omitempty"`
	Age          int    `json:"age"`
	Relationship string `json:"relationship"`
	Reason       string `json:"reason,omitempty"`
	Appearance   string `json:"appearance,omitempty"`
	Personality  string `json:"personality,omitempty"`
}

type Character struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	State        string `json:"state"`
	Relationship string `json:"relationship"`
}

type CharacterDetails struct {
	Character
	UserID      *int64 `json:"user_id"`
	Race        string `json:"race"`
	HasPortrait bool   `json:"has_portrait"`
	Appearance  string `json:"appearance,omitempty"`
	Personality string `json:"personality,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type Journey struct {
	ID          int64  `json:"id"`
	PlanetID    int64  `json:"planet_id"`
	Time        string `json:"time"`
	DoctorID    int64  `json:"doctor_id"`
	Description string `json:"description"`
}

type AddJourneyRequest struct {
	Planet      int64  `json:"planet"`
	Time        string `json:"time"`
	Doctor      int64  `json:"doctor"`
	Description string `json:"description"`
}

type Message struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// PortraitUpload is a presigned PUT target for a character portrait.
type PortraitUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
