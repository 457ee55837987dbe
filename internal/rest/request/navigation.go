package request

import "github.com/Guyuepp/blog-client/domain"

type Navigate struct {
	View string `json:"view" binding:"required"`
}

type OpenPost struct {
	From string `json:"from"`
}

type OpenEditor struct {
	PostID string `json:"post_id"` // empty for a new post
}

type Page struct {
	Page int `json:"page" binding:"required"`
}

type PageSize struct {
	PageSize int `json:"page_size" binding:"required"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *Login) ToDomain() domain.Credentials {
	return domain.Credentials{Username: r.Username, Password: r.Password}
}

type ConfigUpdate struct {
	Value string `json:"value"`
}

type Theme struct {
	Theme string `json:"theme" binding:"required,oneof=light dark cream"`
}

type Language struct {
	Language string `json:"language" binding:"required"`
}
