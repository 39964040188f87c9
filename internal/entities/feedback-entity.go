package entities

import "time"

type Review struct {
	ID             uint64
	AuthorID       uint64
	AuthorUsername string
	TitleID        uint64
	Text           string
	Score          int
	PubDate        time.Time
}

type Comment struct {
	ID             uint64
	AuthorID       uint64
	AuthorUsername string
	ReviewID       uint64
	Text           string
	PubDate        time.Time
}
