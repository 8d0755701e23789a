// Package search turns free-text queries and category picks into search
// requests and keeps the back/forward history of the home screen.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var ErrEmptyQuery = errors.New("search query is empty")

const DefaultHomeLimit = 20

// API is the subset of the gateway the dispatcher needs.
type API interface {
	ListRecipes(ctx context.Context) ([]models.RecipeSummary, error)
	SearchRecipes(ctx context.Context, query string) (models.SearchResultSet, error)
}

// Result is what the home screen renders for a location.
type Result struct {
	Location Location
	Recipes  []models.RecipeSummary
	Message  string
}

type Dispatcher struct {
	API       API
	HomeLimit int
	// Shuffle reorders the home list in place. Defaults to math/rand/v2.
	Shuffle func([]models.RecipeSummary)

	History History
}

// Query searches free text. Whitespace-only input is rejected with
// ErrEmptyQuery before any request and without touching History.
func (d *Dispatcher) Query(ctx context.Context, text string) (Result, error) {
	q := strings.TrimSpace(text)
	if q == "" {
		return Result{}, ErrEmptyQuery
	}
	loc := Location{Query: q}
	d.History.Push(loc)
	return d.load(ctx, loc)
}

// Category searches by category. The name is lower-cased for both the
// location and the request.
func (d *Dispatcher) Category(ctx context.Context, name string) (Result, error) {
	c := strings.ToLower(strings.TrimSpace(name))
	if c == "" {
		return Result{}, ErrEmptyQuery
	}
	loc := Location{Category: c}
	d.History.Push(loc)
	return d.load(ctx, loc)
}

// Home shows the default grid and records it in History.
func (d *Dispatcher) Home(ctx context.Context) (Result, error) {
	d.History.Push(Location{})
	return d.load(ctx, Location{})
}

// Open dispatches a parsed location, e.g. one passed on the command line.
func (d *Dispatcher) Open(ctx context.Context, loc Location) (Result, error) {
	switch {
	case loc.Query != "":
		return d.Query(ctx, loc.Query)
	case loc.Category != "":
		return d.Category(ctx, loc.Category)
	default:
		return d.Home(ctx)
	}
}

// Back re-dispatches the previous location. ok is false at the start of
// History.
func (d *Dispatcher) Back(ctx context.Context) (res Result, ok bool, err error) {
	loc, ok := d.History.Back()
	if !ok {
		return Result{}, false, nil
	}
	res, err = d.load(ctx, loc)
	return res, true, err
}

func (d *Dispatcher) Forward(ctx context.Context) (res Result, ok bool, err error) {
	loc, ok := d.History.Forward()
	if !ok {
		return Result{}, false, nil
	}
	res, err = d.load(ctx, loc)
	return res, true, err
}

// Reload re-dispatches the current location, or home when there is none.
func (d *Dispatcher) Reload(ctx context.Context) (Result, error) {
	loc, _ := d.History.Current()
	return d.load(ctx, loc)
}

func (d *Dispatcher) load(ctx context.Context, loc Location) (Result, error) {
	res := Result{Location: loc}

	switch {
	case loc.Query != "":
		set, err := d.API.SearchRecipes(ctx, loc.Query)
		if err != nil {
			return res, fmt.Errorf("search %q: %w", loc.Query, err)
		}
		res.Recipes, res.Message = set.Recipes, set.Message
		if res.Message == "" {
			res.Message = fmt.Sprintf(`Showing recipes for "%s"`, loc.Query)
		}

	case loc.Category != "":
		set, err := d.API.SearchRecipes(ctx, loc.Category)
		if err != nil {
			return res, fmt.Errorf("search category %q: %w", loc.Category, err)
		}
		res.Recipes, res.Message = set.Recipes, set.Message
		if res.Message == "" {
			res.Message = fmt.Sprintf(`Showing recipes for category "%s"`, DisplayCategory(loc.Category))
		}

	default:
		all, err := d.API.ListRecipes(ctx)
		if err != nil {
			return res, fmt.Errorf("list recipes: %w", err)
		}
		res.Recipes = d.pickHome(all)
	}

	if res.Recipes == nil {
		res.Recipes = []models.RecipeSummary{}
	}
	return res, nil
}

func (d *Dispatcher) pickHome(all []models.RecipeSummary) []models.RecipeSummary {
	out := append([]models.RecipeSummary(nil), all...)
	if d.Shuffle != nil {
		d.Shuffle(out)
	} else {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	limit := d.HomeLimit
	if limit <= 0 {
		limit = DefaultHomeLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
