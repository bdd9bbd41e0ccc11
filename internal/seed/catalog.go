package seed

import (
	_ "embed"
	"fmt"

	"blogicum/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed fixtures/catalog.yml
var defaultCatalog []byte

// CatalogFixture is the YAML shape of the built-in categories and locations.
type CatalogFixture struct {
	Categories []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		IsPublished bool   `yaml:"is_published"`
	} `yaml:"categories"`
	Locations []struct {
		Name        string `yaml:"name"`
		IsPublished bool   `yaml:"is_published"`
	} `yaml:"locations"`
}

// ParseCatalog decodes a catalog fixture; nil input selects the built-in one.
func ParseCatalog(raw []byte) (*CatalogFixture, error) {
	if raw == nil {
		raw = defaultCatalog
	}
	var fx CatalogFixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parse catalog fixture: %w", err)
	}
	return &fx, nil
}

// Catalog upserts the fixture's categories by slug and creates missing
// locations by name. Running it twice is harmless.
func Catalog(db *gorm.DB, fx *CatalogFixture) ([]models.Category, []models.Location, error) {
	var (
		categories []models.Category
		locations  []models.Location
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range fx.Categories {
			category := models.Category{
				Title:       item.Title,
				Slug:        item.Slug,
				Description: item.Description,
				IsPublished: item.IsPublished,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "description", "is_published"}),
			}).Create(&category).Error; err != nil {
				return fmt.Errorf("category %s: %w", item.Slug, err)
			}
			if err := tx.Where("slug = ?", item.Slug).First(&category).Error; err != nil {
				return err
			}
			categories = append(categories, category)
		}

		for _, item := range fx.Locations {
			var location models.Location
			err := tx.Where(models.Location{Name: item.Name}).
				Attrs(models.Location{IsPublished: item.IsPublished}).
				FirstOrCreate(&location).Error
			if err != nil {
				return fmt.Errorf("location %s: %w", item.Name, err)
			}
			locations = append(locations, location)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}
