package blogservice

import (
	"database/sql"
	"time"

	"github.com/gourab8389/blog-author/internal/assetservice"
	"github.com/gourab8389/blog-author/internal/common"
	"github.com/gourab8389/blog-author/internal/eventservice"
)

type Blog struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID authored the blog. Exact equality, no
// admin override.
func (b *Blog) OwnedBy(userID int) bool {
	return b.UserID == userID
}

type Comment struct {
	ID        int       `json:"id"`
	BlogID    int       `json:"blog_id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedBlog is a bookmark joining a user to a blog.
type SavedBlog struct {
	ID        int       `json:"id"`
	BlogID    int       `json:"blog_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload is an in-memory file received from a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m      *BlogModel
	c      *common.Cache
	events *eventservice.Publisher
	assets assetservice.Uploader
}
