package entities

import "github.com/aarondl/null/v8"

type Category struct {
	ID   uint64
	Name string
	Slug string
}

type Genre struct {
	ID   uint64
	Name string
	Slug string
}

type Title struct {
	ID          uint64
	Name        string
	Year        null.Int
	Description string
	CategoryID  null.Uint64
	Category    *Category
	Genres      []Genre
	// Rating — производное среднее по отзывам; nil, когда отзывов нет.
	Rating null.Int
}
