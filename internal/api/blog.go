package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

type blogResult struct {
	envelope
	Blog *models.Blog `json:"blog"`
}

func (a *API) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	var res struct {
		envelope
		Blogs []models.Blog `json:"blogs"`
	}
	if err := a.http.Get(ctx, "/api/blog", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch blogs")
	}
	return res.Blogs, nil
}

func (a *API) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	var res blogResult
	if err := a.http.Get(ctx, "/api/blog/"+id, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Blog == nil {
		return nil, res.err("blog not found")
	}
	return res.Blog, nil
}

// IncrementViews bumps the view counter and returns the updated blog.
func (a *API) IncrementViews(ctx context.Context, id string) (*models.Blog, error) {
	var res blogResult
	if err := a.http.Patch(ctx, "/api/blog/"+id+"/views", nil, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Blog == nil {
		return nil, res.err("failed to update views")
	}
	return res.Blog, nil
}

func (a *API) IncrementLikes(ctx context.Context, id string) (*models.Blog, error) {
	var res blogResult
	if err := a.http.Patch(ctx, "/api/blog/"+id+"/likes", nil, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Blog == nil {
		return nil, res.err("failed to like blog")
	}
	return res.Blog, nil
}

func (a *API) CreateBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	var res blogResult
	if err := a.http.Post(ctx, "/api/blog/create", blog, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to create blog")
	}
	return res.Blog, nil
}
