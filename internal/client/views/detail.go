package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/dessertai/internal/client/favorites"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

var (
	ErrNotOwner        = errors.New("you can only change your own comments")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment is empty")
	ErrRatingRange     = errors.New("rating must be between 1 and 5")
)

// AlertLoginForFavorites is the blocking alert shown by the detail screen
// when favoriting without a session.
const AlertLoginForFavorites = "You must be logged in to save favorites!"

// Detail is the single-recipe screen.
type Detail struct {
	API       DetailAPI
	Favorites *favorites.Set
	FavAPI    FavoritesAPI
	Sessions  Sessions
	Logger    logging.Logger

	Recipe   models.RecipeDetail
	Average  string
	MyRating int
	Comments []models.Comment
}

func (d *Detail) log() logging.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// Load fetches the recipe, its average rating, its comments and the
// user's favorites independently. Only a failure to fetch the recipe
// fails the screen; the other sections fall back to empty values.
func (d *Detail) Load(ctx context.Context, recipeID int64) error {
	d.Recipe = models.RecipeDetail{}
	d.Average = models.ZeroRating
	d.MyRating = 0
	d.Comments = nil

	var (
		g        errgroup.Group
		recipe   models.RecipeDetail
		average  = models.ZeroRating
		comments []models.Comment
	)

	g.Go(func() error {
		r, err := d.API.GetRecipe(ctx, recipeID)
		if err != nil {
			d.log().Error(ctx, "fetch recipe failed", "recipe_id", recipeID, "error", err)
			return fmt.Errorf("load recipe %d: %w", recipeID, err)
		}
		recipe = r
		return nil
	})
	g.Go(func() error {
		r, err := d.API.AverageRating(ctx, recipeID)
		if err != nil {
			d.log().Warn(ctx, "fetch rating failed", "recipe_id", recipeID, "error", err)
			return nil
		}
		average = r.Normalize()
		return nil
	})
	g.Go(func() error {
		cs, err := d.API.ListComments(ctx, recipeID)
		if err != nil {
			d.log().Warn(ctx, "fetch comments failed", "recipe_id", recipeID, "error", err)
			return nil
		}
		comments = cs
		return nil
	})
	g.Go(func() error {
		s, err := d.Sessions.Current(ctx)
		if err != nil || !s.SignedIn() {
			return nil
		}
		favs, err := d.FavAPI.ListFavorites(ctx, s.UserID)
		if err != nil {
			d.log().Warn(ctx, "fetch favorites failed", "error", err)
			return nil
		}
		d.Favorites.Load(models.RecipeIDs(favs))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	d.Recipe, d.Average, d.Comments = recipe, average, comments
	return nil
}

func (d *Detail) IsFavorite() bool { return d.Favorites.Has(d.Recipe.ID) }

// ToggleFavorite returns session.ErrNotSignedIn for the caller to alert
// on. API failures are logged and leave the state as it was.
func (d *Detail) ToggleFavorite(ctx context.Context) (favorites.State, error) {
	if _, err := d.Sessions.Require(ctx); err != nil {
		return d.Favorites.State(d.Recipe.ID), err
	}
	st, err := d.Favorites.Toggle(ctx, d.Recipe.ID)
	if err != nil {
		d.log().Error(ctx, "update favorite failed", "recipe_id", d.Recipe.ID, "error", err)
		if errors.Is(err, favorites.ErrPending) {
			return st, err
		}
	}
	return st, nil
}

// Rate submits a 1..5 rating and re-reads the average.
func (d *Detail) Rate(ctx context.Context, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	s, err := d.Sessions.Require(ctx)
	if err != nil {
		return err
	}
	if err := d.API.RateRecipe(ctx, d.Recipe.ID, s.UserID, rating); err != nil {
		d.log().Error(ctx, "submit rating failed", "recipe_id", d.Recipe.ID, "error", err)
		return err
	}
	d.MyRating = rating

	avg, err := d.API.AverageRating(ctx, d.Recipe.ID)
	if err != nil {
		d.log().Warn(ctx, "refresh rating failed", "recipe_id", d.Recipe.ID, "error", err)
		return nil
	}
	d.Average = avg.Normalize()
	return nil
}

// PostComment adds a comment and shows it first.
func (d *Detail) PostComment(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	s, err := d.Sessions.Require(ctx)
	if err != nil {
		return err
	}
	c, err := d.API.PostComment(ctx, d.Recipe.ID, s.UserID, text)
	if err != nil {
		d.log().Error(ctx, "post comment failed", "recipe_id", d.Recipe.ID, "error", err)
		return err
	}
	d.Comments = append([]models.Comment{c}, d.Comments...)
	return nil
}

// owned finds commentID and checks that the signed-in user wrote it.
func (d *Detail) owned(ctx context.Context, commentID int64) (models.Session, int, error) {
	s, err := d.Sessions.Require(ctx)
	if err != nil {
		return models.Session{}, -1, err
	}
	for i, c := range d.Comments {
		if c.ID != commentID {
			continue
		}
		if !c.OwnedBy(s.UserID) {
			return s, i, ErrNotOwner
		}
		return s, i, nil
	}
	return s, -1, ErrCommentNotFound
}

func (d *Detail) EditComment(ctx context.Context, commentID int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	s, i, err := d.owned(ctx, commentID)
	if err != nil {
		return err
	}
	if err := d.API.UpdateComment(ctx, commentID, s.UserID, text); err != nil {
		d.log().Error(ctx, "update comment failed", "comment_id", commentID, "error", err)
		return err
	}
	d.Comments[i].Text = text
	return nil
}

func (d *Detail) DeleteComment(ctx context.Context, commentID int64) error {
	s, i, err := d.owned(ctx, commentID)
	if err != nil {
		return err
	}
	if err := d.API.DeleteComment(ctx, commentID, s.UserID); err != nil {
		d.log().Error(ctx, "delete comment failed", "comment_id", commentID, "error", err)
		return err
	}
	d.Comments = append(d.Comments[:i], d.Comments[i+1:]...)
	return nil
}
