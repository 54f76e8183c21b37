package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tardis/internal/logging"
	"github.com/dmitrijs2005/tardis/internal/server/config"
	"github.com/dmitrijs2005/tardis/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migrateStub struct {
	repomanager.RepositoryManager
	err    error
	called bool
}

func (m *migrateStub) RunMigrations(context.Context, *sql.DB) error {
	m.called = true
	return m.err
}

func newTestApp(t *testing.T, rm repomanager.RepositoryManager) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return &App{config: &config.Config{}, logger: logging.Nop{}, db: db, repomanager: rm}, mock
}

func TestNewApp_WiresComponents(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.Same(t, cfg, app.config)
	assert.NotNil(t, app.db)
	assert.NotNil(t, app.repomanager)
	assert.NotNil(t, app.http)
	assert.NotNil(t, app.health)
}

func TestRun_FailsWhenMigrationsFail(t *testing.T) {
	rm := &migrateStub{err: errors.New("bad migration")}
	app, mock := newTestApp(t, rm)
	mock.ExpectPing()
	mock.ExpectClose()

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
	assert.True(t, rm.called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_FailsWhenDatabaseUnreachable(t *testing.T) {
	rm := &migrateStub{}
	app, mock := newTestApp(t, rm)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
	assert.False(t, rm.called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
