package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	createQ  = `(?s)^INSERT\s+INTO\s+users\s*\(login,\s*password_hash,\s*character_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
	byLoginQ = `(?s)^SELECT\s+id,\s*login,\s*password_hash,\s*character_id,\s*created_at\s+FROM\s+users\s+WHERE\s+login\s*=\s*\$1\s*$`
	byIDQ    = `(?s)^SELECT\s+id,\s*login,\s*password_hash,\s*character_id,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	profileQ = `(?s)^SELECT\s+u\.id,\s*u\.login,\s*u\.character_id,\s*c\.name\s+FROM\s+users\s+u\s+JOIN\s+characters\s+c\s+ON\s+c\.id\s*=\s*u\.character_id\s+WHERE\s+u\.id\s*=\s*\$1\s*$`
	existsQ  = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\)$`
)

var userColumns = []string{"id", "login", "password_hash", "character_id", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now)
	mock.ExpectQuery(createQ).
		WithArgs("rose", "hash", int64(3)).
		WillReturnRows(rows)

	u := &models.User{Login: "rose", PasswordHash: "hash", CharacterID: 3}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Login != "rose" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQ).
		WithArgs("rose", "hash", int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Login: "rose", PasswordHash: "hash", CharacterID: 3})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQ).
		WithArgs("rose", "hash", int64(3)).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Login: "rose", PasswordHash: "hash", CharacterID: 3})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(1), "rose", "hash", int64(3), time.Now())
	mock.ExpectQuery(byLoginQ).
		WithArgs("rose").
		WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "rose")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if got.ID != 1 || got.PasswordHash != "hash" || got.CharacterID != 3 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byLoginQ).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQ).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "rose", "hash", int64(3), time.Now()))

	got, err := repo.GetUserByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if got.Login != "rose" {
		t.Fatalf("unexpected user: %+v", got)
	}

	mock.ExpectQuery(byIDQ).
		WithArgs(int64(2)).
		WillReturnError(errors.New("db err"))

	_, err = repo.GetUserByID(context.Background(), 2)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(profileQ).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "character_id", "name"}).
			AddRow(int64(1), "rose", int64(3), "Rose Tyler"))

	got, err := repo.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	want := models.Profile{ID: 1, Login: "rose", CharacterID: 3, CharacterName: "Rose Tyler"}
	if *got != want {
		t.Fatalf("got %+v, want %+v", *got, want)
	}

	mock.ExpectQuery(profileQ).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Profile(context.Background(), 9); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), 5)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	mock.ExpectQuery(existsQ).
		WithArgs(int64(6)).
		WillReturnError(errors.New("db down"))

	if _, err := repo.Exists(context.Background(), 6); err == nil {
		t.Fatal("expected error")
	}
}
