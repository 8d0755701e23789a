package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var (
	epAddFavorite    = endpoint{"favorites.add", "Failed to update favorite"}
	epRemoveFavorite = endpoint{"favorites.remove", "Failed to remove favorite"}
	epListFavorites  = endpoint{"favorites.list", "Failed to fetch favorites"}
	epSaveSearch     = endpoint{"history.save", "Failed to save search"}
	epSearchHistory  = endpoint{"history.list", "Failed to fetch search history"}
)

type favoriteRequest struct {
	UserID   int64 `json:"user_id"`
	RecipeID int64 `json:"recipe_id"`
}

func (c *Client) AddFavorite(ctx context.Context, userID models.ID, recipeID int64) error {
	return c.favorite(ctx, epAddFavorite, "/recipes/save-favorite", userID, recipeID)
}

func (c *Client) RemoveFavorite(ctx context.Context, userID models.ID, recipeID int64) error {
	return c.favorite(ctx, epRemoveFavorite, "/recipes/remove-favorite", userID, recipeID)
}

func (c *Client) favorite(ctx context.Context, ep endpoint, path string, userID models.ID, recipeID int64) error {
	uid, err := userIDInt(userID)
	if err != nil {
		return err
	}
	return c.do(ctx, ep, call{
		method: http.MethodPost,
		path:   path,
		body:   favoriteRequest{UserID: uid, RecipeID: recipeID},
	})
}

func (c *Client) ListFavorites(ctx context.Context, userID models.ID) ([]models.RecipeSummary, error) {
	var out []models.RecipeSummary
	err := c.do(ctx, epListFavorites, call{
		method: http.MethodGet,
		path:   "/recipes/favorites/" + userID.String(),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type saveSearchRequest struct {
	UserID int64                `json:"user_id"`
	Recipe models.RecipeSummary `json:"recipe"`
}

// SaveSearch records an opened recipe in the user's search history.
func (c *Client) SaveSearch(ctx context.Context, userID models.ID, recipe models.RecipeSummary) error {
	uid, err := userIDInt(userID)
	if err != nil {
		return err
	}
	return c.do(ctx, epSaveSearch, call{
		method: http.MethodPost,
		path:   "/recipes/save-search",
		body:   saveSearchRequest{UserID: uid, Recipe: recipe},
	})
}

func (c *Client) SearchHistory(ctx context.Context, userID models.ID) ([]models.RecipeSummary, error) {
	var out struct {
		SearchHistory []models.RecipeSummary `json:"search_history"`
	}
	err := c.do(ctx, epSearchHistory, call{
		method: http.MethodGet,
		path:   "/recipes/get-search-history",
		query:  url.Values{"user_id": {userID.String()}},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.SearchHistory == nil {
		return []models.RecipeSummary{}, nil
	}
	return out.SearchHistory, nil
}
