package views

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLinks map[string]string

func (m mapLinks) PathFor(name string) (string, bool) {
	p, ok := m[name]
	return p, ok
}

func withLinks(t *testing.T, l Links) {
	t.Helper()
	UseLinks(l)
	t.Cleanup(func() { UseLinks(nil) })
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/", pathFor("character"), "no table installed")

	withLinks(t, mapLinks{"character": "/character", "search": "/search"})
	assert.Equal(t, "/character", pathFor("character"))
	assert.Equal(t, "/", pathFor("missing"))
	assert.Equal(t, "/character?id=7", characterHref(7))
}

func TestQueryID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"id=12", 12, true},
		{"id=0", 0, false},
		{"id=-3", 0, false},
		{"id=abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			got, ok := queryID(q)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchHref(t *testing.T) {
	withLinks(t, mapLinks{"search": "/search"})
	assert.Equal(t, "/search", searchHref("  "))
	assert.Equal(t, "/search?q=river+song", searchHref(" river song "))
}

func TestMostRecent(t *testing.T) {
	var list []api.Journey
	for i := 1; i <= 7; i++ {
		list = append(list, api.Journey{ID: int64(i)})
	}

	got := mostRecent(list, recentLimit)
	require.Len(t, got, recentLimit)
	for i, j := range got {
		assert.Equal(t, int64(7-i), j.ID)
	}
	assert.Equal(t, int64(1), list[0].ID, "input left untouched")

	assert.Len(t, mostRecent(list[:2], recentLimit), 2)
	assert.Empty(t, mostRecent(nil, recentLimit))
}

func TestErrText(t *testing.T) {
	assert.Equal(t, "", errText(nil))
	assert.Equal(t, "boom", errText(fmt.Errorf("boom")))
	assert.Contains(t, errText(fmt.Errorf("dial: %w", api.ErrUnavailable)), "unavailable")

	apiErr := &api.Error{Status: 404, Detail: "Character not found"}
	assert.Equal(t, apiErr.Error(), errText(fmt.Errorf("wrapped: %w", apiErr)))
}

func TestSignupRequest(t *testing.T) {
	s := &Signup{login: " amy ", password: "pond", name: "Amy", age: "21", relationship: "doctor",
		appearance: "red hair", personality: "brave", reason: "ignored"}
	req, err := s.request()
	require.NoError(t, err)
	assert.Equal(t, api.SignupRequest{
		Login: "amy", Password: "pond", Name: "Amy", Age: 21, Relationship: "doctor",
		Appearance: "red hair", Personality: "brave",
	}, req)

	s = &Signup{login: "dalek", password: "x", name: "Dalek", age: "700", relationship: "enemy", reason: "exterminate"}
	req, err = s.request()
	require.NoError(t, err)
	assert.Equal(t, "exterminate", req.Reason)
	assert.Empty(t, req.Appearance)

	s = &Signup{age: "9"}
	req, err = s.request()
	require.NoError(t, err)
	assert.Equal(t, "companion", req.Relationship)

	for _, age := range []string{"", "-1", "old"} {
		_, err = (&Signup{age: age}).request()
		assert.ErrorIs(t, err, errBadAge, age)
	}
}

func TestHistoryRequest(t *testing.T) {
	h := &History{planet: "3", doctor: " 11 ", when: "2005-03-26", description: "Rose"}
	req, err := h.request()
	require.NoError(t, err)
	assert.Equal(t, api.AddJourneyRequest{Planet: 3, Doctor: 11, Time: "2005-03-26", Description: "Rose"}, req)

	for _, bad := range []*History{
		{planet: "x", doctor: "1", when: "now"},
		{planet: "1", doctor: "", when: "now"},
		{planet: "1", doctor: "1", when: " "},
	} {
		_, err := bad.request()
		assert.ErrorIs(t, err, errBadJourney)
	}
}
