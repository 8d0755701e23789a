package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/dessertai/internal/client/favorites"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/session"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

// DefaultHeading is shown above the grid when none is given.
const DefaultHeading = "Here are the best recipes for you"

// Grid is a reconciled list of recipes with favorite markers.
type Grid struct {
	Reconciler Reconciler
	Favorites  *favorites.Set
	FavAPI     FavoritesAPI
	History    HistoryAPI
	Sessions   Sessions
	Logger     logging.Logger

	Heading string
	recipes []models.RecipeSummary
}

func (g *Grid) log() logging.Logger {
	if g.Logger == nil {
		return logging.Discard()
	}
	return g.Logger
}

// Load reconciles recipes and, for a signed-in user, refreshes favorite
// membership. A favorites failure is logged and leaves markers as they
// were.
func (g *Grid) Load(ctx context.Context, heading string, recipes []models.RecipeSummary) {
	g.Heading = heading
	if g.Heading == "" {
		g.Heading = DefaultHeading
	}
	g.recipes = g.Reconciler.Reconcile(ctx, recipes)
	g.loadFavorites(ctx)
}

func (g *Grid) loadFavorites(ctx context.Context) {
	s, err := g.Sessions.Current(ctx)
	if err != nil || !s.SignedIn() {
		g.log().Debug(ctx, "no user id; skipping favorites fetch")
		return
	}
	favs, err := g.FavAPI.ListFavorites(ctx, s.UserID)
	if err != nil {
		g.log().Warn(ctx, "fetch favorites failed", "error", err)
		return
	}
	g.Favorites.Load(models.RecipeIDs(favs))
}

func (g *Grid) Recipes() []models.RecipeSummary { return g.recipes }

func (g *Grid) IsFavorite(recipeID int64) bool { return g.Favorites.Has(recipeID) }

// ToggleFavorite flips membership. Without a session the grid only logs a
// diagnostic; API failures are logged too. The returned state is the one
// to render.
func (g *Grid) ToggleFavorite(ctx context.Context, recipeID int64) favorites.State {
	st, err := g.Favorites.Toggle(ctx, recipeID)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotSignedIn):
		g.log().Warn(ctx, "must be logged in to save favorites", "recipe_id", recipeID)
	default:
		g.log().Error(ctx, "update favorite failed", "recipe_id", recipeID, "error", err)
	}
	return st
}

// Find returns the grid entry with the given id.
func (g *Grid) Find(recipeID int64) (models.RecipeSummary, bool) {
	for _, r := range g.recipes {
		if r.ID == recipeID {
			return r, true
		}
	}
	return models.RecipeSummary{}, false
}

// Open records recipe in the signed-in user's search history. It never
// blocks opening the recipe: failures are logged.
func (g *Grid) Open(ctx context.Context, recipe models.RecipeSummary) {
	s, err := g.Sessions.Current(ctx)
	if err != nil || !s.SignedIn() {
		g.log().Debug(ctx, "not logged in; search history not saved", "recipe_id", recipe.ID)
		return
	}
	if err := g.History.SaveSearch(ctx, s.UserID, recipe); err != nil {
		g.log().Warn(ctx, "save search history failed", "recipe_id", recipe.ID, "error", err)
	}
}
