package blogservice

import (
	"context"
	"database/sql"

	"github.com/gourab8389/blog-author/internal/assetservice"
	"github.com/gourab8389/blog-author/internal/common"
	"github.com/gourab8389/blog-author/internal/eventservice"
)

func NewBlogService(db *sql.DB, cache *common.Cache, events *eventservice.Publisher, assets assetservice.Uploader) *BlogService {
	return &BlogService{
		m:      newBlogModel(db),
		c:      cache,
		events: events,
		assets: assets,
	}
}

type CreateBlogRequest struct {
	Title       string
	Description string
	Content     string
	Category    string
	UserID      int
	File        *Upload
}

// UpdateBlogRequest carries optional fields. A nil field keeps the stored
// value; a provided field replaces it and is validated like on creation.
type UpdateBlogRequest struct {
	ID          int
	UserID      int
	Title       *string
	Description *string
	Content     *string
	Category    *string
	File        *Upload
}

// CreateBlog hosts the uploaded image, inserts the blog, and emits a cache
// invalidation event for the blog collection. The event is emitted strictly
// after the insert commits; nothing is written when validation or the image
// upload fails.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateContent(v, req.Content)
	validateCategory(v, req.Category)
	validateInt(v, req.UserID, "user_id")
	validateUpload(v, req.File)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	imageURL, err := s.assets.Upload(ctx, req.File.Filename, req.File.Data)
	if err != nil {
		v.AddError("image", "could not upload image")
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Image:       imageURL,
		UserID:      req.UserID,
	}

	err = s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(blog.ID), blog)
	s.events.InvalidateCache(ctx, common.CacheKeyAllBlogs)

	return blog, nil
}

// GetBlogByID returns a blog post by its ID, serving from the local cache
// when possible.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// UpdateBlog merges the provided fields into the stored blog and writes the
// result. Only the author may update. A new image, when uploaded, is hosted
// before the write so a failed upload leaves the row untouched.
func (s *BlogService) UpdateBlog(ctx context.Context, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if !blog.OwnedBy(req.UserID) {
		return nil, ErrNotOwner
	}

	if req.File != nil {
		imageURL, err := s.assets.Upload(ctx, req.File.Filename, req.File.Data)
		if err != nil {
			v.AddError("image", "could not upload image")
			return nil, v.ValidationError()
		}
		blog.Image = imageURL
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Category != nil {
		blog.Category = *req.Category
	}

	validateTitle(v, blog.Title)
	validateDescription(v, blog.Description)
	validateContent(v, blog.Content)
	validateCategory(v, blog.Category)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(blog.ID))
	s.events.InvalidateCache(ctx, common.CacheKeyAllBlogs, common.CacheKeyBlog(blog.ID))

	return blog, nil
}

// DeleteBlog removes a blog and its comments and bookmarks. Only the author
// may delete.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if !blog.OwnedBy(userID) {
		return ErrNotOwner
	}

	err = s.m.deleteCascade(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))
	s.events.InvalidateCache(ctx, common.CacheKeyAllBlogs, common.CacheKeyBlog(id))

	return nil
}
