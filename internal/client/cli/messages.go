package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) Inbox(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	list, err := a.api.Messages(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Inbox is empty")
		return nil
	}

	for _, m := range list {
		fmt.Fprintf(a.out, "[%s] from user %d: %s\n", m.CreatedAt.Local().Format(time.DateTime), m.FromUserID, m.Message)
	}
	return nil
}

func (a *App) Send(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	to, err := getInt(a.reader, "Recipient user id", a.out)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.SendMessage(ctx, to, body); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Message sent")
	return nil
}
