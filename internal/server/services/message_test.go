package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tardis/internal/common"
	"github.com/dmitrijs2005/tardis/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T) (*MessageService, *fakeRepoManager, *models.User, *models.User) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	a, _ := rm.u.Create(context.Background(), &models.User{Login: "rose"})
	b, _ := rm.u.Create(context.Background(), &models.User{Login: "mickey"})
	return NewMessageService(db, rm), rm, a, b
}

func TestSendAndInbox(t *testing.T) {
	s, _, rose, mickey := newMessageService(t)

	id, err := s.Send(context.Background(), rose, mickey.ID, "run")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	_, err = s.Send(context.Background(), rose, mickey.ID, "faster")
	require.NoError(t, err)

	inbox, err := s.Inbox(context.Background(), mickey)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "faster", inbox[0].Body)
	assert.Equal(t, rose.ID, inbox[0].FromUserID)

	empty, err := s.Inbox(context.Background(), rose)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSend_Errors(t *testing.T) {
	s, rm, rose, mickey := newMessageService(t)

	_, err := s.Send(context.Background(), rose, 0, "x")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Send(context.Background(), rose, mickey.ID, "  ")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Send(context.Background(), rose, 99, "hello?")
	require.ErrorIs(t, err, common.ErrorNotFound)

	rm.u.existsErr = errBoom{}
	_, err = s.Send(context.Background(), rose, mickey.ID, "x")
	require.ErrorIs(t, err, common.ErrorInternal)

	rm.u.existsErr = nil
	rm.m.createErr = errBoom{}
	_, err = s.Send(context.Background(), rose, mickey.ID, "x")
	require.ErrorIs(t, err, common.ErrorInternal)

	rm.m.inboxErr = errBoom{}
	_, err = s.Inbox(context.Background(), mickey)
	require.ErrorIs(t, err, common.ErrorInternal)
}
