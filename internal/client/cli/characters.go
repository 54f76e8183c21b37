package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tardis/internal/client/api"
)

// Characters lists characters; any arguments form a name search.
func (a *App) Characters(ctx context.Context, args []string) error {
	list, err := a.api.Characters(ctx, strings.Join(args, " "), "")
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No characters found")
		return nil
	}

	for _, c := range list {
		fmt.Fprintf(a.out, "%4d  %-24s %-10s age %d, %s\n", c.ID, c.Name, c.Relationship, c.Age, c.State)
	}
	return nil
}

func (a *App) Character(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := a.api.Character(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (#%d)\n", d.Name, d.ID)
	fmt.Fprintf(a.out, "  race:         %s\n", d.Race)
	fmt.Fprintf(a.out, "  age:          %d\n", d.Age)
	fmt.Fprintf(a.out, "  state:        %s\n", d.State)
	fmt.Fprintf(a.out, "  relationship: %s\n", d.Relationship)
	if d.UserID != nil {
		fmt.Fprintf(a.out, "  player:       user %d\n", *d.UserID)
	}
	if d.Appearance != "" {
		fmt.Fprintf(a.out, "  appearance:   %s\n", d.Appearance)
	}
	if d.Personality != "" {
		fmt.Fprintf(a.out, "  personality:  %s\n", d.Personality)
	}
	if d.Reason != "" {
		fmt.Fprintf(a.out, "  reason:       %s\n", d.Reason)
	}
	if d.HasPortrait {
		url, err := a.api.PortraitURL(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "  portrait:     %s\n", url)
	}
	return nil
}

// Portrait uploads an image file as the portrait of the user's own character.
func (a *App) Portrait(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	key, err := api.UploadPortrait(ctx, a.api, nil, id, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Portrait uploaded (%s)\n", key)
	return nil
}
