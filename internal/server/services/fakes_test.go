package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/cryptox"
	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/characters"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/journeys"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/messages"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	cryptox.Cost = bcrypt.MinCost
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64

	createErr  error
	getErr     error
	existsErr  error
	profileErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, ex := range f.byID {
		if ex.Login == u.Login {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	u.ID = cp.ID
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Profile(ctx context.Context, id int64) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	u, err := f.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Profile{ID: u.ID, Login: u.Login, CharacterID: u.CharacterID, CharacterName: "char"}, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken

	findErr   error
	delErr    error
	createErr error
	pruneErr  error
	pruned    []int64
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pruneErr != nil {
		return 0, f.pruneErr
	}
	f.pruned = append(f.pruned, userID)
	var n int64
	for k, t := range f.tokens {
		if t.UserID == userID && t.Expires.Before(time.Now()) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- characters ---

type fakeCharactersRepo struct {
	races      map[string]int64
	chars      map[int64]*models.Character
	doctors    map[int64]*models.Doctor
	enemies    map[int64]*models.Enemy
	nextID     int64
	lastFilter characters.Filter

	raceErr    error
	createErr  error
	listErr    error
	detailsErr error
	setKeyErr  error
}

func newFakeCharactersRepo() *fakeCharactersRepo {
	return &fakeCharactersRepo{
		races:   map[string]int64{},
		chars:   map[int64]*models.Character{},
		doctors: map[int64]*models.Doctor{},
		enemies: map[int64]*models.Enemy{},
	}
}

func (f *fakeCharactersRepo) FindOrCreateRace(ctx context.Context, name string) (int64, error) {
	if f.raceErr != nil {
		return 0, f.raceErr
	}
	if id, ok := f.races[name]; ok {
		return id, nil
	}
	id := int64(len(f.races) + 1)
	f.races[name] = id
	return id, nil
}

func (f *fakeCharactersRepo) Create(ctx context.Context, c *models.Character) (*models.Character, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.chars[c.ID] = &cp
	return c, nil
}

func (f *fakeCharactersRepo) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	f.doctors[d.CharacterID] = d
	return nil
}

func (f *fakeCharactersRepo) CreateEnemy(ctx context.Context, e *models.Enemy) error {
	f.enemies[e.CharacterID] = e
	return nil
}

func (f *fakeCharactersRepo) List(ctx context.Context, filter characters.Filter) ([]models.Character, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Character, 0, len(f.chars))
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.chars[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCharactersRepo) Details(ctx context.Context, id int64) (*models.CharacterDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	c, ok := f.chars[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.CharacterDetails{Character: *c, Race: "Human", Doctor: f.doctors[id], Enemy: f.enemies[id]}, nil
}

func (f *fakeCharactersRepo) SetPortraitKey(ctx context.Context, id int64, key string) error {
	if f.setKeyErr != nil {
		return f.setKeyErr
	}
	c, ok := f.chars[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.PortraitKey = key
	return nil
}

// --- journeys ---

type fakeJourneysRepo struct {
	timePoints []models.TimePoint
	journeys   []models.Journey
	links      map[int64][]int64

	timeErr error
	linkErr error
	listErr error
}

func newFakeJourneysRepo() *fakeJourneysRepo {
	return &fakeJourneysRepo{links: map[int64][]int64{}}
}

func (f *fakeJourneysRepo) CreateTimePoint(ctx context.Context, tp *models.TimePoint) (*models.TimePoint, error) {
	if f.timeErr != nil {
		return nil, f.timeErr
	}
	tp.ID = int64(len(f.timePoints) + 1)
	f.timePoints = append(f.timePoints, *tp)
	return tp, nil
}

func (f *fakeJourneysRepo) Create(ctx context.Context, j *models.Journey) (*models.Journey, error) {
	j.ID = int64(len(f.journeys) + 1)
	f.journeys = append(f.journeys, *j)
	return j, nil
}

func (f *fakeJourneysRepo) AddCharacter(ctx context.Context, characterID, journeyID int64) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.links[characterID] = append(f.links[characterID], journeyID)
	return nil
}

func (f *fakeJourneysRepo) ListByCharacter(ctx context.Context, characterID int64) ([]models.Journey, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Journey, 0)
	for _, id := range f.links[characterID] {
		out = append(out, f.journeys[id-1])
	}
	return out, nil
}

// --- messages ---

type fakeMessagesRepo struct {
	msgs      []models.Message
	createErr error
	inboxErr  error
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = int64(len(f.msgs) + 1)
	m.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *m)
	return m, nil
}

func (f *fakeMessagesRepo) Inbox(ctx context.Context, userID int64) ([]models.Message, error) {
	if f.inboxErr != nil {
		return nil, f.inboxErr
	}
	out := make([]models.Message, 0)
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if f.msgs[i].ToUserID == userID {
			out = append(out, f.msgs[i])
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	c *fakeCharactersRepo
	j *fakeJourneysRepo
	m *fakeMessagesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		r: newFakeRefreshRepo(),
		c: newFakeCharactersRepo(),
		j: newFakeJourneysRepo(),
		m: &fakeMessagesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Characters(dbx.DBTX) characters.Repository       { return m.c }
func (m *fakeRepoManager) Journeys(dbx.DBTX) journeys.Repository           { return m.j }
func (m *fakeRepoManager) Messages(dbx.DBTX) messages.Repository           { return m.m }
