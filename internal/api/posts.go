package api

import (
	"context"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// PostService wraps the post endpoints, including the like/share sub-actions
// and comments.
type PostService struct {
	c *Client
}

// NewPostService creates a PostService over the given client.
func NewPostService(c *Client) *PostService {
	return &PostService{c: c}
}

// List fetches every post.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.c.get(ctx, "/api/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Mine fetches the signed-in user's posts. This is the only fetch path for
// the session store's post cache.
func (s *PostService) Mine(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.c.get(ctx, "/api/posts/mine", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches one post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := s.c.get(ctx, "/api/posts/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create submits a new post, optionally with an image.
func (s *PostService) Create(ctx context.Context, form forms.PostForm, image *File) (*models.Post, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"title":    form.Title,
		"content":  form.Content,
		"category": form.Category,
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var p models.Post
	if err := s.c.postMultipart(ctx, "/api/posts", fields, files, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update submits a full-resource replacement for the post.
func (s *PostService) Update(ctx context.Context, id string, form forms.PostForm, image *File) (*models.Post, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"title":    form.Title,
		"content":  form.Content,
		"category": form.Category,
	}
	var files []File
	if image != nil {
		files = append(files, *image)
	}
	var p models.Post
	if err := s.c.putMultipart(ctx, "/api/posts/"+id, fields, files, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the post on the server.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/posts/"+id, nil)
}

// Like records a like and returns the updated post.
func (s *PostService) Like(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := s.c.postJSON(ctx, "/api/posts/"+id+"/like", struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Share records a share and returns the updated post.
func (s *PostService) Share(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := s.c.postJSON(ctx, "/api/posts/"+id+"/share", struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Comments fetches the comments of a post.
func (s *PostService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.c.get(ctx, "/api/posts/"+postID+"/comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment creates a comment on a post.
func (s *PostService) AddComment(ctx context.Context, form forms.CommentForm) (*models.Comment, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var c models.Comment
	if err := s.c.postJSON(ctx, "/api/comments", form, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment.
func (s *PostService) DeleteComment(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/comments/"+id, nil)
}
