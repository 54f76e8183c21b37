package httpapi

import (
	"time"

	"github.com/dmitrijs2005/tardis/internal/server/models"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type signupRequest struct {
	Login        string  `json:"login"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	Race         string  `json:"race"`
	Age          *int    `json:"age"`
	Relationship string  `json:"relationship"`
	Reason       *string `json:"reason"`
	Appearance   *string `json:"appearance"`
	Personality  *string `json:"personality"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type characterResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	State        string `json:"state"`
	Relationship string `json:"relationship"`
}

type characterDetailsResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	State        string  `json:"state"`
	Relationship string  `json:"relationship"`
	UserID       *int64  `json:"user_id"`
	Race         string  `json:"race"`
	HasPortrait  bool    `json:"has_portrait"`
	Appearance   *string `json:"appearance,omitempty"`
	Personality  *string `json:"personality,omitempty"`
	Reason       *string `json:"reason,omitempty"`
}

func newCharacterDetailsResponse(d *models.CharacterDetails) characterDetailsResponse {
	resp := characterDetailsResponse{
		ID:           d.ID,
		Name:         d.Name,
		Age:          d.Age,
		State:        d.State,
		Relationship: d.Relationship,
		UserID:       d.UserID,
		Race:         d.Race,
		HasPortrait:  d.PortraitKey != "",
	}
	if d.Doctor != nil {
		resp.Appearance = &d.Doctor.Appearance
		resp.Personality = &d.Doctor.Personality
	}
	if d.Enemy != nil {
		resp.Reason = &d.Enemy.Reason
	}
	return resp
}

type journeyResponse struct {
	ID          int64  `json:"id"`
	PlanetID    int64  `json:"planet_id"`
	Time        string `json:"time"`
	DoctorID    int64  `json:"doctor_id"`
	Description string `json:"description"`
}

type addJourneyRequest struct {
	Planet      *int64 `json:"planet"`
	Time        string `json:"time"`
	Doctor      *int64 `json:"doctor"`
	Description string `json:"description"`
}

type addJourneyResponse struct {
	Message   string `json:"message"`
	JourneyID int64  `json:"journey_id"`
}

type messageResponse struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	ToUserID int64  `json:"to_user_id"`
	Message  string `json:"message"`
}

type sendMessageResponse struct {
	Message   string `json:"message"`
	MessageID int64  `json:"message_id"`
}

type portraitUploadRequest struct {
	ContentType string `json:"content_type"`
}

type portraitUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type portraitResponse struct {
	URL string `json:"url"`
}
