// Package reconcile backfills average ratings on recipe collections.
package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/dessertai/internal/client/metrics"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

// RatingFetcher reads the current rating aggregate of one recipe.
type RatingFetcher interface {
	AverageRating(ctx context.Context, recipeID int64) (models.Rating, error)
}

type Reconciler struct {
	Ratings RatingFetcher
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// Reconcile returns a copy of recipes, same order and length, where every
// AverageRating is a normalized string. Items whose rating needs a fetch
// are fetched concurrently; a failed fetch yields models.ZeroRating and
// does not affect the other items. Reconcile never fails.
func (r *Reconciler) Reconcile(ctx context.Context, recipes []models.RecipeSummary) []models.RecipeSummary {
	out := make([]models.RecipeSummary, len(recipes))
	log := r.Logger
	if log == nil {
		log = logging.Discard()
	}

	var g errgroup.Group
	for i, recipe := range recipes {
		out[i] = recipe
		if !recipe.AverageRating.NeedsFetch() {
			out[i].AverageRating = recipe.AverageRating.Normalized()
			continue
		}

		g.Go(func() error {
			rating, err := r.Ratings.AverageRating(ctx, recipe.ID)
			if err != nil {
				log.Warn(ctx, "rating fetch failed", "recipe_id", recipe.ID, "error", err)
				r.Metrics.ObserveFetch(metrics.FetchFailed)
				out[i].AverageRating = models.RatingFromString(models.ZeroRating)
				return nil
			}
			r.Metrics.ObserveFetch(metrics.FetchOK)
			out[i].AverageRating = rating.Normalized()
			return nil
		})
	}
	_ = g.Wait()

	return out
}
