package dto

type ReviewDTO struct {
	ID      uint64 `json:"id"`
	Author  string `json:"author"`
	TitleID uint64 `json:"title"`
	Text    string `json:"text"`
	Score   int    `json:"score"`
	PubDate string `json:"pub_date"`
}

type CreateReviewDTO struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

type UpdateReviewDTO struct {
	Text  *string `json:"text" validate:"omitempty"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

type CommentDTO struct {
	ID       uint64 `json:"id"`
	Author   string `json:"author"`
	ReviewID uint64 `json:"review"`
	Text     string `json:"text"`
	PubDate  string `json:"pub_date"`
}

type CreateCommentDTO struct {
	Text string `json:"text" validate:"required"`
}

type UpdateCommentDTO struct {
	Text *string `json:"text" validate:"omitempty"`
}
