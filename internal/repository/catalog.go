package repository

import (
	"context"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Category, error)
	SetPublished(ctx context.Context, slug string, published bool) error
	Delete(ctx context.Context, slug string) error
}

// LocationRepository persists locations.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Location, error)
	SetPublished(ctx context.Context, id uint, published bool) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Category slug already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := readDB(r.db).WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFoundOr(err, "Category", id)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := readDB(r.db).WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, notFoundByOr(err, "Category", "slug", slug)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, publishedOnly bool) ([]models.Category, error) {
	q := readDB(r.db).WithContext(ctx).Order("title ASC").Order("id ASC")
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) SetPublished(ctx context.Context, slug string, published bool) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug).Update("is_published", published)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundByError("Category", "slug", slug)
	}
	return nil
}

// Delete removes the category; its posts stay with no category.
func (r *categoryRepository) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("slug = ?", slug).First(&category).Error; err != nil {
			return notFoundByOr(err, "Category", "slug", slug)
		}
		if err := tx.Model(&models.Post{}).Where("category_id = ?", category.ID).Update("category_id", nil).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := readDB(r.db).WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, notFoundOr(err, "Location", id)
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, publishedOnly bool) ([]models.Location, error) {
	q := readDB(r.db).WithContext(ctx).Order("name ASC").Order("id ASC")
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var locations []models.Location
	if err := q.Find(&locations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}

func (r *locationRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	res := r.db.WithContext(ctx).Model(&models.Location{ID: id}).Update("is_published", published)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Location", id)
	}
	return nil
}

// Delete removes the location; its posts keep existing without one.
func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Location{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Location", id)
		}
		return nil
	})
}
