package views

import (
	"context"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

// Sessions is the read side of session.Manager.
type Sessions interface {
	Current(ctx context.Context) (models.Session, error)
	Require(ctx context.Context) (models.Session, error)
}

// Reconciler normalizes ratings on a collection.
type Reconciler interface {
	Reconcile(ctx context.Context, recipes []models.RecipeSummary) []models.RecipeSummary
}

type FavoritesAPI interface {
	ListFavorites(ctx context.Context, userID models.ID) ([]models.RecipeSummary, error)
	RemoveFavorite(ctx context.Context, userID models.ID, recipeID int64) error
}

type HistoryAPI interface {
	SaveSearch(ctx context.Context, userID models.ID, recipe models.RecipeSummary) error
	SearchHistory(ctx context.Context, userID models.ID) ([]models.RecipeSummary, error)
}

type DetailAPI interface {
	GetRecipe(ctx context.Context, id int64) (models.RecipeDetail, error)
	AverageRating(ctx context.Context, recipeID int64) (models.Rating, error)
	RateRecipe(ctx context.Context, recipeID int64, userID models.ID, rating int) error
	ListComments(ctx context.Context, recipeID int64) ([]models.Comment, error)
	PostComment(ctx context.Context, recipeID int64, userID models.ID, text string) (models.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, userID models.ID, text string) error
	DeleteComment(ctx context.Context, commentID int64, userID models.ID) error
}
