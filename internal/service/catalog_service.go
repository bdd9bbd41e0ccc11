package service

import (
	"context"
	"strings"

	"blogicum/internal/cache"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

// CatalogService manages categories and locations. Category lookups by slug
// and the published lists are served cache-aside from Redis.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

type CreateCategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

type CreateLocationInput struct {
	Name        string
	IsPublished *bool
}

func NewCatalogService(categoryRepo repository.CategoryRepository, locationRepo repository.LocationRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

// GetBySlug returns the category whether or not it is published.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := cache.Aside(ctx, "category", cache.CategoryKey(slug), &category, cache.CategoryTTL, func() error {
		found, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		category = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetPublishedCategory hides unpublished categories behind NotFound.
func (s *CatalogService) GetPublishedCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !category.IsPublished {
		return nil, models.NewNotFoundByError("Category", "slug", slug)
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, publishedOnly bool) ([]models.Category, error) {
	if !publishedOnly {
		return s.categoryRepo.List(ctx, false)
	}
	var categories []models.Category
	err := cache.Aside(ctx, "categories", cache.PublishedCategories, &categories, cache.CatalogTTL, func() error {
		var err error
		categories, err = s.categoryRepo.List(ctx, true)
		return err
	})
	return categories, err
}

func (s *CatalogService) ListLocations(ctx context.Context, publishedOnly bool) ([]models.Location, error) {
	if !publishedOnly {
		return s.locationRepo.List(ctx, false)
	}
	var locations []models.Location
	err := cache.Aside(ctx, "locations", cache.PublishedLocations, &locations, cache.CatalogTTL, func() error {
		var err error
		locations, err = s.locationRepo.List(ctx, true)
		return err
	})
	return locations, err
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(in.Slug)
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	category := &models.Category{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Slug:        slug,
		IsPublished: true,
	}
	if in.IsPublished != nil {
		category.IsPublished = *in.IsPublished
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	cache.InvalidateCategory(ctx, slug)
	return category, nil
}

// SetCategoryPublished toggles a category. Unpublishing hides all of its
// posts from the public immediately.
func (s *CatalogService) SetCategoryPublished(ctx context.Context, slug string, published bool) error {
	if err := s.categoryRepo.SetPublished(ctx, slug, published); err != nil {
		return err
	}
	cache.InvalidateCategory(ctx, slug)
	return nil
}

// DeleteCategory removes a category; its posts remain with no category.
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.categoryRepo.Delete(ctx, slug); err != nil {
		return err
	}
	cache.InvalidateCategory(ctx, slug)
	return nil
}

func (s *CatalogService) CreateLocation(ctx context.Context, in CreateLocationInput) (*models.Location, error) {
	if err := validation.ValidateLocationName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	location := &models.Location{
		Name:        strings.TrimSpace(in.Name),
		IsPublished: true,
	}
	if in.IsPublished != nil {
		location.IsPublished = *in.IsPublished
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	cache.InvalidateLocations(ctx)
	return location, nil
}

func (s *CatalogService) SetLocationPublished(ctx context.Context, id uint, published bool) error {
	if err := s.locationRepo.SetPublished(ctx, id, published); err != nil {
		return err
	}
	cache.InvalidateLocations(ctx)
	return nil
}

func (s *CatalogService) DeleteLocation(ctx context.Context, id uint) error {
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateLocations(ctx)
	return nil
}
