package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/views"
)

func heart(member bool) string {
	if member {
		return "♥"
	}
	return "♡"
}

func renderCard(w io.Writer, r models.RecipeSummary, favorite bool) {
	parts := []string{fmt.Sprintf("%s [%d] %s", heart(favorite), r.ID, r.Name), "★ " + r.AverageRating.String()}
	if r.CookingTime != nil {
		parts = append(parts, fmt.Sprintf("%d min", *r.CookingTime))
	}
	if r.Complexity != "" {
		parts = append(parts, r.Complexity)
	}
	if r.Category != "" {
		parts = append(parts, r.Category)
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, " · "))
}

func renderRecipes(w io.Writer, heading string, recipes []models.RecipeSummary, isFavorite func(int64) bool) {
	fmt.Fprintln(w, heading)
	if len(recipes) == 0 {
		fmt.Fprintln(w, "  No recipes found.")
		return
	}
	for _, r := range recipes {
		renderCard(w, r, isFavorite(r.ID))
	}
}

func renderGrid(w io.Writer, g *views.Grid) {
	renderRecipes(w, g.Heading, g.Recipes(), g.IsFavorite)
}

func renderSlider(w io.Writer, s *views.CategorySlider) {
	fmt.Fprintf(w, "Categories (%d/%d): %s\n", s.Index()+1, s.TotalSlides(), strings.Join(s.Slide(), " | "))
}

func renderComments(w io.Writer, comments []models.Comment) {
	fmt.Fprintf(w, "Comments (%d)\n", len(comments))
	for _, c := range comments {
		who := c.Username
		if who == "" {
			who = "user " + c.UserID.String()
		}
		line := fmt.Sprintf("  #%d %s", c.ID, who)
		if c.CreatedAt != "" {
			line += " (" + c.CreatedAt + ")"
		}
		fmt.Fprintln(w, line+": "+c.Text)
	}
}

func renderDetail(w io.Writer, d *views.Detail) {
	r := d.Recipe
	fmt.Fprintf(w, "%s %s  ★ %s\n", heart(d.IsFavorite()), r.Name, d.Average)
	if d.MyRating > 0 {
		fmt.Fprintf(w, "Your rating: %d\n", d.MyRating)
	}
	if r.ImageURL != "" {
		fmt.Fprintln(w, "Image: "+r.ImageURL)
	}
	if v := r.EmbedVideoURL(); v != "" {
		fmt.Fprintln(w, "Video: "+v)
	}
	if r.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Description)
	}
	if len(r.Ingredients) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Ingredients")
		for _, in := range r.Ingredients {
			fmt.Fprintln(w, "  - "+in)
		}
	}
	if len(r.Instructions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Instructions")
		for i, step := range r.Instructions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
	fmt.Fprintln(w)
	renderComments(w, d.Comments)
}
