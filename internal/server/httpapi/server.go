// Package httpapi exposes the TARDIS REST API over gorilla/mux.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tardis/internal/logging"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/characters"
	"github.com/dmitrijs2005/tardis/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (int64, error)
	Login(ctx context.Context, login, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
	Me(ctx context.Context, userID int64) (*models.Profile, error)
}

type CharacterService interface {
	List(ctx context.Context, f characters.Filter) ([]models.Character, error)
	Get(ctx context.Context, id int64) (*models.CharacterDetails, error)
	PortraitUploadURL(ctx context.Context, user *models.User, characterID int64, contentType string) (string, string, error)
	PortraitURL(ctx context.Context, characterID int64) (string, error)
}

type JourneyService interface {
	List(ctx context.Context, user *models.User) ([]models.Journey, error)
	Add(ctx context.Context, user *models.User, in services.AddJourneyInput) (int64, error)
}

type MessageService interface {
	Send(ctx context.Context, from *models.User, toUserID int64, body string) (int64, error)
	Inbox(ctx context.Context, user *models.User) ([]models.Message, error)
}

type HTTPServer struct {
	address    string
	logger     logging.Logger
	users      UserService
	characters CharacterService
	journeys   JourneyService
	messages   MessageService
}

func NewHTTPServer(a string, l logging.Logger, us UserService, cs CharacterService, js JourneyService, ms MessageService) *HTTPServer {
	return &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		characters: cs,
		journeys:   js,
		messages:   ms,
	}
}

// Handler builds the router with all routes and wraps it in the request-id,
// access-log and CORS middleware. The wrappers sit outside mux so 404, 405
// and preflight answers carry the same headers as routed responses.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/token", s.login).Methods(http.MethodPost)
	r.HandleFunc("/token/refresh", s.refresh).Methods(http.MethodPost)
	r.HandleFunc("/signup", s.signup).Methods(http.MethodPost)

	r.HandleFunc("/characters", s.listCharacters).Methods(http.MethodGet)
	r.HandleFunc("/characters/{id:[0-9]+}", s.getCharacter).Methods(http.MethodGet)
	r.HandleFunc("/characters/{id:[0-9]+}/portrait", s.portraitURL).Methods(http.MethodGet)

	r.Handle("/characters/{id:[0-9]+}/portrait", s.requireUser(s.portraitUpload)).Methods(http.MethodPost)
	r.Handle("/users/me", s.requireUser(s.me)).Methods(http.MethodGet)
	r.Handle("/journeys", s.requireUser(s.listJourneys)).Methods(http.MethodGet)
	r.Handle("/add_journey", s.requireUser(s.addJourney)).Methods(http.MethodPost)
	r.Handle("/messages", s.requireUser(s.inbox)).Methods(http.MethodGet)
	r.Handle("/messages", s.requireUser(s.sendMessage)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return s.requestID(s.accessLog(cors(r)))
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
