package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var (
	epListRecipes = endpoint{"recipes.list", "Failed to fetch recipes"}
	epSearch      = endpoint{"recipes.search", "Failed to fetch recipes"}
	epGetRecipe   = endpoint{"recipes.get", "Failed to fetch recipe"}
	epGetRating   = endpoint{"ratings.get", "Failed to fetch rating"}
	epRate        = endpoint{"ratings.submit", "Failed to submit rating"}
)

func recipePath(id int64, rest ...string) string {
	p := "/recipes/" + strconv.FormatInt(id, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) ListRecipes(ctx context.Context) ([]models.RecipeSummary, error) {
	var out []models.RecipeSummary
	if err := c.do(ctx, epListRecipes, call{method: http.MethodGet, path: "/recipes", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// searchResponse accepts both a bare array and the {recipes,
// alternativeRecipes, message} envelope.
type searchResponse struct {
	models.SearchResultSet
}

func (s *searchResponse) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &s.Recipes)
	}
	var env struct {
		Recipes     []models.RecipeSummary `json:"recipes"`
		Alternative []models.RecipeSummary `json:"alternativeRecipes"`
		Message     string                 `json:"message"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	switch {
	case len(env.Recipes) > 0:
		s.Recipes = env.Recipes
	case len(env.Alternative) > 0:
		s.Recipes = env.Alternative
	}
	s.Message = env.Message
	return nil
}

// SearchRecipes runs a free-text search. The query is sent as given.
func (c *Client) SearchRecipes(ctx context.Context, query string) (models.SearchResultSet, error) {
	var out searchResponse
	err := c.do(ctx, epSearch, call{
		method: http.MethodGet,
		path:   "/recipes/search",
		query:  url.Values{"query": {query}},
		out:    &out,
	})
	if err != nil {
		return models.SearchResultSet{}, err
	}
	if out.Recipes == nil {
		out.Recipes = []models.RecipeSummary{}
	}
	return out.SearchResultSet, nil
}

func (c *Client) GetRecipe(ctx context.Context, id int64) (models.RecipeDetail, error) {
	var out models.RecipeDetail
	if err := c.do(ctx, epGetRecipe, call{method: http.MethodGet, path: recipePath(id), out: &out}); err != nil {
		return models.RecipeDetail{}, err
	}
	return out, nil
}

// AverageRating returns the rating aggregate as sent; callers normalize.
func (c *Client) AverageRating(ctx context.Context, recipeID int64) (models.Rating, error) {
	var out struct {
		AverageRating models.Rating `json:"average_rating"`
	}
	if err := c.do(ctx, epGetRating, call{method: http.MethodGet, path: recipePath(recipeID, "ratings"), out: &out}); err != nil {
		return models.Rating{}, err
	}
	return out.AverageRating, nil
}

type rateRequest struct {
	UserID int64 `json:"user_id"`
	Rating int   `json:"rating"`
}

func (c *Client) RateRecipe(ctx context.Context, recipeID int64, userID models.ID, rating int) error {
	uid, err := userIDInt(userID)
	if err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d out of range 1..5", rating)
	}
	return c.do(ctx, epRate, call{
		method: http.MethodPost,
		path:   recipePath(recipeID, "rate"),
		body:   rateRequest{UserID: uid, Rating: rating},
	})
}
