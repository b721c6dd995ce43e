package remote

import (
	"fmt"
	"strings"
)

// Post mirrors a record of the /posts resource.
type Post struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// NewPost is the payload sent to create a post. The server assigns the id.
type NewPost struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Label returns a short human-readable reference such as "#7 Title".
func (p Post) Label() string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return fmt.Sprintf("#%d", p.ID)
	}
	return fmt.Sprintf("#%d %s", p.ID, title)
}
