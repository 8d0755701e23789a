package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an identifier the API sends either as a JSON number or a string.
// It is kept as its decimal string, matching how the session stores it.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Int returns the numeric form the API expects in request bodies.
func (id ID) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
}

func (id ID) String() string { return string(id) }

// Session is the persisted credential pair of the signed-in user.
type Session struct {
	Token  string
	UserID ID
}

// Authenticated reports whether a credential token is present.
func (s Session) Authenticated() bool { return s.Token != "" }

// SignedIn reports whether a user id is present. Views acting on behalf of
// a user check this rather than the token.
func (s Session) SignedIn() bool { return s.UserID != "" }

// Comment is a user comment on a recipe.
type Comment struct {
	ID        int64  `json:"id"`
	UserID    ID     `json:"user_id"`
	Username  string `json:"username"`
	Text      string `json:"comment_text"`
	CreatedAt string `json:"created_at"`
}

// OwnedBy reports whether userID matches the comment author.
func (c Comment) OwnedBy(userID ID) bool {
	return userID != "" && userID == c.UserID
}

// SearchResultSet is a list of search results plus the server's optional
// human-readable note.
type SearchResultSet struct {
	Recipes []RecipeSummary
	Message string
}
