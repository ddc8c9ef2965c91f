package dto

import "github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Label    string `json:"label" validate:"required"`
	Language string `json:"language" validate:"required,language"`
}

func (r CreateCategoryRequest) ToDomain() domain.Category {
	return domain.Category{
		Name:     r.Name,
		Label:    r.Label,
		Language: domain.Language(r.Language),
	}
}

type CreateSubcategoryRequest struct {
	CategoryID int64  `json:"categoryId" validate:"required,gt=0"`
	Name       string `json:"name" validate:"required,min=2"`
	Label      string `json:"label" validate:"required"`
}

func (r CreateSubcategoryRequest) ToDomain() domain.Subcategory {
	return domain.Subcategory{
		CategoryID: r.CategoryID,
		Name:       r.Name,
		Label:      r.Label,
	}
}
