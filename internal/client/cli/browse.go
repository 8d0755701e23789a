package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/search"
	"github.com/dmitrijs2005/dessertai/internal/client/session"
	"github.com/dmitrijs2005/dessertai/internal/client/views"
)

var errUsage = errors.New("usage")

func (a *App) homeScreen() screen {
	return screen{name: screenHome, load: func(ctx context.Context) error {
		res, err := a.dispatch.Reload(ctx)
		return a.renderHome(ctx, res, err)
	}}
}

func (a *App) renderHome(ctx context.Context, res search.Result, err error) error {
	if err != nil {
		a.fail(err)
		return err
	}
	a.grid.Load(ctx, res.Message, res.Recipes)
	renderGrid(a.out, a.grid)
	return nil
}

// showHome mounts the home screen with an already dispatched result.
func (a *App) showHome(ctx context.Context, res search.Result, err error) error {
	return a.mount(ctx, a.homeScreen(), func(ctx context.Context) error {
		return a.renderHome(ctx, res, err)
	})
}

func (a *App) Home(ctx context.Context) error {
	res, err := a.dispatch.Home(ctx)
	return a.showHome(ctx, res, err)
}

func (a *App) Search(ctx context.Context, args []string) error {
	res, err := a.dispatch.Query(ctx, strings.Join(args, " "))
	if errors.Is(err, search.ErrEmptyQuery) {
		printlnFn("Usage: search <text>")
		return err
	}
	return a.showHome(ctx, res, err)
}

// Open dispatches a location such as "/?q=pie" or "/?category=tart".
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: open <location>")
		return errUsage
	}
	loc, err := search.ParseLocation(args[0])
	if err != nil {
		a.fail(err)
		return err
	}
	res, err := a.dispatch.Open(ctx, loc)
	if errors.Is(err, search.ErrEmptyQuery) {
		printlnFn("Usage: open <location>")
		return err
	}
	return a.showHome(ctx, res, err)
}

func (a *App) Categories(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "next":
			a.slider.Next()
		case "prev":
			a.slider.Prev()
		default:
			printlnFn("Usage: categories [next|prev]")
			return errUsage
		}
	}
	renderSlider(a.out, a.slider)
	return nil
}

func (a *App) Category(ctx context.Context, args []string) error {
	res, err := a.dispatch.Category(ctx, strings.Join(args, " "))
	if errors.Is(err, search.ErrEmptyQuery) {
		printlnFn("Usage: category <name>")
		return err
	}
	return a.showHome(ctx, res, err)
}

func (a *App) Back(ctx context.Context) error {
	res, ok, err := a.dispatch.Back(ctx)
	if !ok {
		printlnFn("Nothing to go back to.")
		return nil
	}
	return a.showHome(ctx, res, err)
}

func (a *App) Forward(ctx context.Context) error {
	res, ok, err := a.dispatch.Forward(ctx)
	if !ok {
		printlnFn("Nothing to go forward to.")
		return nil
	}
	return a.showHome(ctx, res, err)
}

// Reload re-mounts the current screen.
func (a *App) Reload(ctx context.Context) error {
	if a.current.load == nil {
		return a.Home(ctx)
	}
	return a.mount(ctx, a.current, nil)
}

// parseID reads a positive id from args[i], printing usage otherwise.
func parseID(args []string, i int, usage string) (int64, bool) {
	if len(args) <= i {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	return id, true
}

// listed finds id among the recipes currently on screen.
func (a *App) listed(id int64) (models.RecipeSummary, bool) {
	if r, ok := a.grid.Find(id); ok {
		return r, true
	}
	for _, r := range a.favList.Recipes() {
		if r.ID == id {
			return r, true
		}
	}
	return models.RecipeSummary{}, false
}

// Show opens the detail screen. Opening a listed recipe records it in the
// search history.
func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := parseID(args, 0, "show <id>")
	if !ok {
		return errUsage
	}
	if r, ok := a.listed(id); ok {
		a.grid.Open(ctx, r)
	}
	return a.mount(ctx, screen{name: screenDetail, load: func(ctx context.Context) error {
		if err := a.detail.Load(ctx, id); err != nil {
			a.fail(err)
			return err
		}
		renderDetail(a.out, a.detail)
		return nil
	}}, nil)
}

// Fav toggles a favorite. On the detail screen the id may be omitted.
func (a *App) Fav(ctx context.Context, args []string) error {
	onDetail := a.current.name == screenDetail && a.detail.Recipe.ID != 0
	if len(args) == 0 && onDetail {
		return a.detailFav(ctx)
	}
	id, ok := parseID(args, 0, "fav <id>")
	if !ok {
		return errUsage
	}
	if onDetail && id == a.detail.Recipe.ID {
		return a.detailFav(ctx)
	}

	st := a.grid.ToggleFavorite(ctx, id)
	name := fmt.Sprintf("recipe %d", id)
	if r, ok := a.listed(id); ok {
		name = r.Name
	}
	fmt.Fprintf(a.out, "%s %s\n", heart(st.Member()), name)
	return nil
}

func (a *App) detailFav(ctx context.Context) error {
	st, err := a.detail.ToggleFavorite(ctx)
	switch {
	case errors.Is(err, session.ErrNotSignedIn):
		fmt.Fprintln(a.out, "⚠️  "+views.AlertLoginForFavorites)
		return err
	case err != nil:
		a.fail(err)
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", heart(st.Member()), a.detail.Recipe.Name)
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	return a.mount(ctx, screen{name: screenFavorites, load: func(ctx context.Context) error {
		if err := a.favList.Load(ctx); err != nil {
			a.fail(err)
			return err
		}
		a.favs.Load(models.RecipeIDs(a.favList.Recipes()))
		renderRecipes(a.out, "Your favorite recipes", a.favList.Recipes(), a.favs.Has)
		return nil
	}}, nil)
}

func (a *App) Unfav(ctx context.Context, args []string) error {
	id, ok := parseID(args, 0, "unfav <id>")
	if !ok {
		return errUsage
	}
	if err := a.favList.Remove(ctx, id); err != nil {
		a.fail(err)
		return err
	}
	a.favs.Load(models.RecipeIDs(a.favList.Recipes()))
	if a.current.name == screenFavorites {
		renderRecipes(a.out, "Your favorite recipes", a.favList.Recipes(), a.favs.Has)
		return nil
	}
	a.ok("Removed from favorites.")
	return nil
}

func (a *App) History(ctx context.Context) error {
	return a.mount(ctx, screen{name: screenHistory, load: func(ctx context.Context) error {
		if err := a.recent.Load(ctx); err != nil {
			a.fail(err)
			return err
		}
		renderGrid(a.out, a.grid)
		return nil
	}}, nil)
}
