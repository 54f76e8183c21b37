package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/common"
)

// Input helpers behind variables so tests can swap them.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getInt        = GetInt
	getChoice     = GetChoice
)

var relationships = []string{"doctor", "companion", "enemy", "other"}

var errNotLoggedIn = errors.New("you are not logged in")

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, a.out)
}

// Signup asks for the account and character fields and creates both.
// Doctors are asked for appearance and personality, enemies for a reason.
func (a *App) Signup(ctx context.Context) error {
	var req api.SignupRequest
	var err error

	if req.Login, err = a.prompt("Enter login"); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	if req.Name, err = a.prompt("Character name"); err != nil {
		return err
	}
	if req.Race, err = a.prompt("Race (empty for Unknown)"); err != nil {
		return err
	}
	age, err := getInt(a.reader, "Age", a.out)
	if err != nil {
		return err
	}
	req.Age = int(age)
	if req.Relationship, err = getChoice(a.reader, "Relationship to the Doctor", relationships, "companion", a.out); err != nil {
		return err
	}

	switch req.Relationship {
	case "doctor":
		if req.Appearance, err = a.prompt("Appearance"); err != nil {
			return err
		}
		if req.Personality, err = a.prompt("Personality"); err != nil {
			return err
		}
	case "enemy":
		if req.Reason, err = a.prompt("Reason"); err != nil {
			return err
		}
	}

	id, err := a.api.Signup(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User created successfully (id %d). You can log in now.\n", id)
	return nil
}

// Login authenticates and loads the profile with the new token; only then
// does the session switch to the new user and token, in one step.
func (a *App) Login(ctx context.Context) error {
	login, err := a.prompt("Enter login")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	pair, err := a.api.Login(ctx, login, string(password))
	if err != nil {
		return err
	}

	user, err := a.api.MeWithToken(ctx, pair.AccessToken)
	if err != nil {
		return err
	}
	if err := a.session.Login(user, pair.AccessToken); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Login, user.CharacterName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.api.SetRefreshToken("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	a.session.SetUser(user)

	fmt.Fprintf(a.out, "%s (user %d), playing %s (character %d)\n",
		user.Login, user.ID, user.CharacterName, user.CharacterID)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
