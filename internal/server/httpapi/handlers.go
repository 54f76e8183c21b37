package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/characters"
	"github.com/dmitrijs2005/tardis/internal/server/services"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, "OK")
}

// login implements the OAuth2 password flow: form fields username and password.
func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, validationError("malformed form body"), nil)
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		s.writeError(w, r, validationError("username and password are required"), nil)
		return
	}

	pair, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorUnauthorized: "Incorrect username or password"})
		return
	}

	s.logger.Info(r.Context(), "Logged in", "login", username)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer", RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if req.RefreshToken == "" {
		s.writeError(w, r, validationError("refresh_token is required"), nil)
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrInvalidToken: "Invalid refresh token"})
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer", RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if req.Age == nil {
		s.writeError(w, r, validationError("age is required"), nil)
		return
	}

	in := services.SignupInput{
		Login:        req.Login,
		Password:     req.Password,
		Name:         req.Name,
		Race:         req.Race,
		Age:          *req.Age,
		Relationship: req.Relationship,
		Reason:       deref(req.Reason),
		Appearance:   deref(req.Appearance),
		Personality:  deref(req.Personality),
	}

	id, err := s.users.Signup(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorAlreadyExists: "User already exists"})
		return
	}

	s.logger.Info(r.Context(), "Registered", "login", req.Login, "user_id", id)
	writeJSON(w, http.StatusCreated, signupResponse{Message: "User created successfully", UserID: id})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	p, err := s.users.Me(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorNotFound: "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) listCharacters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.characters.List(r.Context(), characters.Filter{Query: q.Get("q"), Relationship: q.Get("relationship")})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	resp := make([]characterResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, characterResponse{ID: c.ID, Name: c.Name, Age: c.Age, State: c.State, Relationship: c.Relationship})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) getCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	d, err := s.characters.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorNotFound: "Character not found"})
		return
	}
	writeJSON(w, http.StatusOK, newCharacterDetailsResponse(d))
}

func (s *HTTPServer) portraitUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	// The body is optional; an empty one means "no content type".
	var req portraitUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, validationError("malformed JSON body"), nil)
		return
	}

	key, url, err := s.characters.PortraitUploadURL(r.Context(), userFrom(r.Context()), id, req.ContentType)
	if err != nil {
		s.writeError(w, r, err, details{
			common.ErrorNotFound:  "Character not found",
			common.ErrorForbidden: "Not the owner of this character",
		})
		return
	}
	writeJSON(w, http.StatusOK, portraitUploadResponse{Key: key, URL: url})
}

func (s *HTTPServer) portraitURL(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	url, err := s.characters.PortraitURL(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorNotFound: "Portrait not found"})
		return
	}
	writeJSON(w, http.StatusOK, portraitResponse{URL: url})
}

func (s *HTTPServer) listJourneys(w http.ResponseWriter, r *http.Request) {
	list, err := s.journeys.List(r.Context(), userFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	resp := make([]journeyResponse, 0, len(list))
	for _, j := range list {
		resp = append(resp, journeyResponse{ID: j.ID, PlanetID: j.PlanetID, Time: j.Time, DoctorID: j.DoctorID, Description: j.Description})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) addJourney(w http.ResponseWriter, r *http.Request) {
	var req addJourneyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if req.Planet == nil || req.Doctor == nil {
		s.writeError(w, r, validationError("planet and doctor are required"), nil)
		return
	}

	id, err := s.journeys.Add(r.Context(), userFrom(r.Context()), services.AddJourneyInput{
		Planet:      *req.Planet,
		Time:        req.Time,
		Doctor:      *req.Doctor,
		Description: req.Description,
	})
	if err != nil {
		if !errors.Is(err, common.ErrorValidation) {
			s.logger.Error(r.Context(), "add journey failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to create journey")
			return
		}
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, addJourneyResponse{Message: "Journey added successfully", JourneyID: id})
}

func (s *HTTPServer) inbox(w http.ResponseWriter, r *http.Request) {
	list, err := s.messages.Inbox(r.Context(), userFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	resp := make([]messageResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, messageResponse{ID: m.ID, FromUserID: m.FromUserID, ToUserID: m.ToUserID, Message: m.Body, CreatedAt: m.CreatedAt})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	id, err := s.messages.Send(r.Context(), userFrom(r.Context()), req.ToUserID, req.Message)
	if err != nil {
		s.writeError(w, r, err, details{common.ErrorNotFound: "Recipient not found"})
		return
	}
	writeJSON(w, http.StatusCreated, sendMessageResponse{Message: "Message sent", MessageID: id})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, validationError("id must be an integer")
	}
	return id, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
