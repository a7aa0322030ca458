package models

type Blog struct {
	ID          string `json:"_id"`
	Title       string `json:"blogTitle"`
	Description string `json:"blogDescription"`
	Image       string `json:"blogImage"`
	AuthorImage string `json:"authorImage"`
	AuthorName  string `json:"authorName"`
	Views       int64  `json:"blogViews"`
	Likes       int64  `json:"blogLikes"`
}
