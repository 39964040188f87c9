package dto

import "github.com/aarondl/null/v8"

type CategoryDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type GenreDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateGenreDTO struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type TitleDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Year        null.Int     `json:"year"`
	Rating      null.Int     `json:"rating"`
	Description string       `json:"description"`
	Category    *CategoryDTO `json:"category"`
	Genre       []GenreDTO   `json:"genre"`
}

type CreateTitleDTO struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Year        *int     `json:"year" validate:"omitempty,pub_year"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// UpdateTitleDTO: набор жанров при обновлении намеренно не заменяется.
type UpdateTitleDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Year        *int    `json:"year" validate:"omitempty,pub_year"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,slug"`
}
