package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var errNoRecipe = errors.New("no recipe open")

// openRecipe reports whether a recipe detail is mounted.
func (a *App) openRecipe() bool {
	if a.current.name != screenDetail || a.detail.Recipe.ID == 0 {
		printlnFn("Open a recipe first: show <id>")
		return false
	}
	return true
}

func (a *App) Rate(ctx context.Context, args []string) error {
	if !a.openRecipe() {
		return errNoRecipe
	}
	if len(args) != 1 {
		printlnFn("Usage: rate <1-5>")
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Usage: rate <1-5>")
		return errUsage
	}
	if err := a.detail.Rate(ctx, n); err != nil {
		a.fail(err)
		return err
	}
	a.ok(fmt.Sprintf("Thanks for rating! Average rating: %s", a.detail.Average))
	return nil
}

func (a *App) Comment(ctx context.Context) error {
	if !a.openRecipe() {
		return errNoRecipe
	}
	text, err := GetMultiline(a.reader, "Your comment", a.out)
	if err != nil {
		return err
	}
	if err := a.detail.PostComment(ctx, text); err != nil {
		a.fail(err)
		return err
	}
	a.ok("Comment posted.")
	renderComments(a.out, a.detail.Comments)
	return nil
}

func (a *App) EditComment(ctx context.Context, args []string) error {
	if !a.openRecipe() {
		return errNoRecipe
	}
	id, ok := parseID(args, 0, "editcomment <id>")
	if !ok {
		return errUsage
	}
	text, err := GetMultiline(a.reader, "New text", a.out)
	if err != nil {
		return err
	}
	if err := a.detail.EditComment(ctx, id, text); err != nil {
		a.fail(err)
		return err
	}
	a.ok("Comment updated.")
	renderComments(a.out, a.detail.Comments)
	return nil
}

func (a *App) DeleteComment(ctx context.Context, args []string) error {
	if !a.openRecipe() {
		return errNoRecipe
	}
	id, ok := parseID(args, 0, "deletecomment <id>")
	if !ok {
		return errUsage
	}
	if err := a.detail.DeleteComment(ctx, id); err != nil {
		a.fail(err)
		return err
	}
	a.ok("Comment deleted.")
	renderComments(a.out, a.detail.Comments)
	return nil
}
