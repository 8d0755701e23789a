package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

// FavoritesList is the user's saved recipes.
type FavoritesList struct {
	API        FavoritesAPI
	Reconciler Reconciler
	Sessions   Sessions

	recipes []models.RecipeSummary
}

// Load fetches and reconciles the list. It requires a signed-in user.
func (f *FavoritesList) Load(ctx context.Context) error {
	s, err := f.Sessions.Require(ctx)
	if err != nil {
		return err
	}
	favs, err := f.API.ListFavorites(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	f.recipes = f.Reconciler.Reconcile(ctx, favs)
	return nil
}

func (f *FavoritesList) Recipes() []models.RecipeSummary { return f.recipes }

// Remove unfavorites recipeID and reloads the whole list.
func (f *FavoritesList) Remove(ctx context.Context, recipeID int64) error {
	s, err := f.Sessions.Require(ctx)
	if err != nil {
		return err
	}
	if err := f.API.RemoveFavorite(ctx, s.UserID, recipeID); err != nil {
		return fmt.Errorf("remove favorite %d: %w", recipeID, err)
	}
	return f.Load(ctx)
}

// RecentSearches loads the user's search history into a Grid.
type RecentSearches struct {
	API      HistoryAPI
	Sessions Sessions
	Grid     *Grid
}

func (r *RecentSearches) Load(ctx context.Context) error {
	s, err := r.Sessions.Require(ctx)
	if err != nil {
		return err
	}
	items, err := r.API.SearchHistory(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("load search history: %w", err)
	}
	r.Grid.Load(ctx, "Recent searches", items)
	return nil
}

// CategorySlider pages through search.Categories PerSlide at a time.
type CategorySlider struct {
	Categories []string
	PerSlide   int

	index int
}

func (c *CategorySlider) perSlide() int {
	if c.PerSlide <= 0 {
		return 4
	}
	return c.PerSlide
}

// TotalSlides is the number of pages, rounded up.
func (c *CategorySlider) TotalSlides() int {
	n := c.perSlide()
	return (len(c.Categories) + n - 1) / n
}

func (c *CategorySlider) Index() int { return c.index }

// Slide returns the categories on the current page.
func (c *CategorySlider) Slide() []string {
	if len(c.Categories) == 0 {
		return nil
	}
	n := c.perSlide()
	start := c.index * n
	end := min(start+n, len(c.Categories))
	return c.Categories[start:end]
}

// Next and Prev wrap around.
func (c *CategorySlider) Next() {
	if total := c.TotalSlides(); total > 0 {
		c.index = (c.index + 1) % total
	}
}

func (c *CategorySlider) Prev() {
	total := c.TotalSlides()
	if total == 0 {
		return
	}
	if c.index == 0 {
		c.index = total - 1
		return
	}
	c.index--
}
