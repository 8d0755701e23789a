package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var (
	epListComments  = endpoint{"comments.list", "Failed to fetch comments"}
	epPostComment   = endpoint{"comments.post", "Failed to post comment"}
	epUpdateComment = endpoint{"comments.update", "Failed to update comment"}
	epDeleteComment = endpoint{"comments.delete", "Failed to delete comment"}
)

type commentRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"comment_text,omitempty"`
}

func commentPath(id int64) string {
	return "/recipes/comments/" + strconv.FormatInt(id, 10)
}

func (c *Client) ListComments(ctx context.Context, recipeID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.do(ctx, epListComments, call{method: http.MethodGet, path: recipePath(recipeID, "comments"), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// PostComment returns the comment as stored by the server.
func (c *Client) PostComment(ctx context.Context, recipeID int64, userID models.ID, text string) (models.Comment, error) {
	uid, err := userIDInt(userID)
	if err != nil {
		return models.Comment{}, err
	}
	var out models.Comment
	err = c.do(ctx, epPostComment, call{
		method: http.MethodPost,
		path:   recipePath(recipeID, "comment"),
		body:   commentRequest{UserID: uid, Text: text},
		out:    &out,
	})
	if err != nil {
		return models.Comment{}, err
	}
	return out, nil
}

func (c *Client) UpdateComment(ctx context.Context, commentID int64, userID models.ID, text string) error {
	uid, err := userIDInt(userID)
	if err != nil {
		return err
	}
	return c.do(ctx, epUpdateComment, call{
		method: http.MethodPut,
		path:   commentPath(commentID),
		body:   commentRequest{UserID: uid, Text: text},
	})
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64, userID models.ID) error {
	uid, err := userIDInt(userID)
	if err != nil {
		return err
	}
	return c.do(ctx, epDeleteComment, call{
		method: http.MethodDelete,
		path:   commentPath(commentID),
		body:   commentRequest{UserID: uid},
	})
}
