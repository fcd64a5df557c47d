package response

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	ImageUrl  string    `json:"image_url,omitempty"`
	Hidden    bool      `json:"hidden"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Chat struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

// Event is the payload fanned out to live channel subscribers whenever
// a post, comment or like lands.
type Event struct {
	Kind      string    `json:"kind"`
	PostID    uuid.UUID `json:"post_id"`
	ActorID   uuid.UUID `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
