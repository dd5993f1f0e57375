package domain

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

const DefaultCategoryColor = "#6B7280"

// Category groups transactions of one type
type Category struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	Name             string       `json:"name" db:"name"`
	Description      *string      `json:"description,omitempty" db:"description"`
	Type             CategoryType `json:"type" db:"type"`
	Color            string       `json:"color" db:"color"`
	Icon             *string      `json:"icon,omitempty" db:"icon"`
	IsActive         bool         `json:"is_active" db:"is_active"`
	SortOrder        int          `json:"sort_order" db:"sort_order"`
	TransactionCount int          `json:"transaction_count" db:"transaction_count"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// DefaultCategories is the starter set offered to a fresh installation, in display order
func DefaultCategories() []*Category {
	seed := []struct {
		name  string
		kind  CategoryType
		color string
		icon  string
	}{
		{"Salário", CategoryTypeIncome, "#10B981", "pi-money-bill"},
		{"Freelance", CategoryTypeIncome, "#8B5CF6", "pi-briefcase"},
		{"Investimentos", CategoryTypeIncome, "#F59E0B", "pi-chart-line"},
		{"Alimentação", CategoryTypeExpense, "#EF4444", "pi-shopping-cart"},
		{"Transporte", CategoryTypeExpense, "#3B82F6", "pi-car"},
		{"Moradia", CategoryTypeExpense, "#6B7280", "pi-home"},
		{"Saúde", CategoryTypeExpense, "#EC4899", "pi-heart"},
		{"Educação", CategoryTypeExpense, "#14B8A6", "pi-book"},
		{"Entretenimento", CategoryTypeExpense, "#F97316", "pi-star"},
		{"Outros", CategoryTypeExpense, "#6B7280", "pi-ellipsis-h"},
	}

	categories := make([]*Category, 0, len(seed))
	for i, s := range seed {
		icon := s.icon
		categories = append(categories, &Category{
			ID:        uuid.New(),
			Name:      s.name,
			Type:      s.kind,
			Color:     s.color,
			Icon:      &icon,
			IsActive:  true,
			SortOrder: i + 1,
		})
	}

	return categories
}

// DTOs for requests and responses

type CreateCategoryRequest struct {
	Name        string       `json:"name" validate:"required,max=50"`
	Description *string      `json:"description" validate:"omitempty,max=200"`
	Type        CategoryType `json:"type" validate:"required,oneof=income expense"`
	Color       string       `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string      `json:"icon" validate:"omitempty,max=50"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// Apply copies the fields present in the request onto the category
func (r *UpdateCategoryRequest) Apply(category *Category) {
	if r.Name != nil {
		category.Name = *r.Name
	}
	if r.Description != nil {
		category.Description = r.Description
	}
	if r.Color != nil {
		category.Color = *r.Color
	}
	if r.Icon != nil {
		category.Icon = r.Icon
	}
	if r.IsActive != nil {
		category.IsActive = *r.IsActive
	}
}

type CategoryOrder struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	SortOrder int       `json:"sort_order" validate:"gte=0"`
}

type ReorderCategoriesRequest struct {
	Categories []CategoryOrder `json:"categories" validate:"required,min=1,dive"`
}
