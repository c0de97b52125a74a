package banners

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/banner-admin/pkg/db/models"
	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

// GormRepository persists banners through GORM (postgres or sqlite).
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository constructs a repository tied to the provided GORM DB.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns every banner in insertion order. insert_seq is assigned on
// insert and never rewritten, so ids and timestamps play no part.
func (r *GormRepository) List(ctx context.Context) ([]Banner, error) {
	var rows []models.Banner
	if err := r.db.WithContext(ctx).Order("insert_seq ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	out := make([]Banner, len(rows))
	for i, row := range rows {
		out[i] = fromModel(row)
	}
	return out, nil
}

// Insert creates a new row.
func (r *GormRepository) Insert(ctx context.Context, record Banner) error {
	if !record.HasID() {
		return pkgerrors.New(pkgerrors.CodeValidation, "banner id is required")
	}
	row := toModel(record)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&models.Banner{}).Select("COALESCE(MAX(insert_seq), 0)").Scan(&last).Error; err != nil {
			return err
		}
		row.InsertSeq = last + 1
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "banner id already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert banner")
	}
	return nil
}

// Replace overwrites the editable columns of an existing row.
func (r *GormRepository) Replace(ctx context.Context, record Banner) error {
	if !record.HasID() {
		return pkgerrors.New(pkgerrors.CodeValidation, "banner id is required")
	}
	row := toModel(record)
	res := r.db.WithContext(ctx).Model(&models.Banner{}).Where("id = ?", row.ID).Updates(map[string]any{
		"banner_group":    row.BannerGroup,
		"name":            row.Name,
		"link":            row.Link,
		"display_order":   row.DisplayOrder,
		"text1":           row.Text1,
		"text2":           row.Text2,
		"text3":           row.Text3,
		"image_url":       row.ImageURL,
		"image_file_name": row.ImageFileName,
		"status":          row.Status,
	})
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update banner")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
	}
	return nil
}

// Remove deletes the row with the given id and reports whether one existed.
func (r *GormRepository) Remove(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "delete banner")
	}
	return res.RowsAffected > 0, nil
}

func toModel(b Banner) models.Banner {
	return models.Banner{
		ID:            b.IDValue(),
		BannerGroup:   string(b.Group),
		Name:          b.Name,
		Link:          b.Link,
		DisplayOrder:  b.Order,
		Text1:         b.Text1,
		Text2:         b.Text2,
		Text3:         b.Text3,
		CreatedDate:   b.Date,
		ImageURL:      b.Image.URL,
		ImageFileName: b.Image.FileName,
		Status:        string(b.Status),
	}
}

func fromModel(m models.Banner) Banner {
	id := m.ID
	return Banner{
		ID:     &id,
		Group:  enums.BannerGroup(m.BannerGroup),
		Name:   m.Name,
		Link:   m.Link,
		Order:  m.DisplayOrder,
		Text1:  m.Text1,
		Text2:  m.Text2,
		Text3:  m.Text3,
		Date:   m.CreatedDate,
		Image:  Image{URL: m.ImageURL, FileName: m.ImageFileName},
		Status: enums.BannerStatus(m.Status),
	}
}
