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

type PostService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Text        string
	PubDate     *time.Time
	IsPublished *bool
	CategoryID  *uint
	LocationID  *uint
	Image       string
}

// UpdatePostInput carries a partial edit. Nil fields are left untouched; a
// CategoryID or LocationID pointing at 0 clears the reference.
type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       *string
	Text        *string
	PubDate     *time.Time
	IsPublished *bool
	CategoryID  *uint
	LocationID  *uint
	Image       *string
}

// PostDetail is a post together with its comment thread.
type PostDetail struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	now func() time.Time,
) *PostService {
	if now == nil {
		now = time.Now
	}
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		now:          now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := authz.RequireAuthenticated(in.UserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.checkReferences(ctx, in.CategoryID, in.LocationID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     s.now(),
		AuthorID:    in.UserID,
		CategoryID:  nonZero(in.CategoryID),
		LocationID:  nonZero(in.LocationID),
		Image:       in.Image,
		IsPublished: true,
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPostDetail returns the post and its comments when viewerID may see it.
// Hidden posts are reported as not found.
func (s *PostService) GetPostDetail(ctx context.Context, viewerID, postID uint) (*PostDetail, error) {
	post, err := s.getViewablePost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments}, nil
}

// GetPostForMutation backs the edit form and the delete confirmation. A post
// the actor cannot see is reported as missing, not as forbidden.
func (s *PostService) GetPostForMutation(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err := absentIfNotFound(err); err != nil {
		return nil, err
	}
	if post != nil && !visibility.CanView(post, userID, s.now()) {
		post = nil
	}
	if err := authorize(ctx, userID, "Post", postID, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPostForMutation(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Text != nil {
		if err := validation.ValidatePostText(*in.Text); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Text = *in.Text
	}
	if err := s.checkReferences(ctx, nonZero(in.CategoryID), nonZero(in.LocationID)); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		post.CategoryID = nonZero(in.CategoryID)
	}
	if in.LocationID != nil {
		post.LocationID = nonZero(in.LocationID)
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if in.Image != nil {
		post.Image = *in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and its comments.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.GetPostForMutation(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) getViewablePost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(post, viewerID, s.now()) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

func (s *PostService) checkReferences(ctx context.Context, categoryID, locationID *uint) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				return models.NewValidationError("Selected category does not exist")
			}
			return err
		}
	}
	if locationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *locationID); err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				return models.NewValidationError("Selected location does not exist")
			}
			return err
		}
	}
	return nil
}

// nonZero maps a pointer to 0 onto nil.
func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
