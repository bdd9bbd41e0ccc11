package service

import (
	"context"
	"time"

	"blogicum/internal/authz"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
	"blogicum/internal/visibility"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, now func() time.Time) *CommentService {
	if now == nil {
		now = time.Now
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         now,
	}
}

// CreateComment adds a comment to a post the actor is allowed to see.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := authz.RequireAuthenticated(in.UserID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !visibility.CanView(post, in.UserID, now) {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	text, err := validation.NormalizeComment(in.Text)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Text:      text,
		PostID:    post.ID,
		AuthorID:  in.UserID,
		CreatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the thread of a post in creation order.
func (s *CommentService) ListComments(ctx context.Context, viewerID, postID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(post, viewerID, s.now()) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// GetCommentForMutation backs the edit form and the delete confirmation. A
// comment that belongs to another post, or to a post the actor cannot see,
// is treated as missing.
func (s *CommentService) GetCommentForMutation(ctx context.Context, userID, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err := absentIfNotFound(err); err != nil {
		return nil, err
	}
	if comment != nil && comment.PostID != postID {
		comment = nil
	}
	if comment != nil && userID != 0 {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err := absentIfNotFound(err); err != nil {
			return nil, err
		}
		if post == nil || !visibility.CanView(post, userID, s.now()) {
			comment = nil
		}
	}
	if err := authorize(ctx, userID, "Comment", commentID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetCommentForMutation(ctx, in.UserID, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	text, err := validation.NormalizeComment(in.Text)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if _, err := s.GetCommentForMutation(ctx, in.UserID, in.PostID, in.CommentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
