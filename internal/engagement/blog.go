package engagement

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

// ErrAlreadyLiked is surfaced when a device tries to like the same blog
// twice. No network call is made in that case.
var ErrAlreadyLiked = errors.New("you already liked this blog")

// BlogEngagement enforces at-most-one view increment and at-most-one like
// increment per (device, blog) through durable seen-sets.
type BlogEngagement struct {
	api *api.API
	kv  storage.Store
	log *logrus.Entry
}

func NewBlogEngagement(a *api.API, kv storage.Store, log *logrus.Logger) *BlogEngagement {
	return &BlogEngagement{
		api: a,
		kv:  kv,
		log: log.WithField("device_id", DeviceID(kv)),
	}
}

// RecordView increments the view counter unless this device has already
// viewed the blog. The bool reports whether an increment call was made.
func (b *BlogEngagement) RecordView(ctx context.Context, blogID string) (*models.Blog, bool, error) {
	if !models.IsValidObjectID(blogID) {
		return nil, false, &InvalidIDError{ID: blogID}
	}

	viewed := storage.GetStringSlice(b.kv, storage.KeyViewedBlogs)
	if contains(viewed, blogID) {
		return nil, false, nil
	}

	blog, err := b.api.IncrementViews(ctx, blogID)
	if err != nil {
		// Background reconciliation: the view count stays stale, UX intact.
		b.log.WithError(err).WithField("blog_id", blogID).Warn("failed to increment blog views")
		return nil, false, err
	}

	viewed = append(viewed, blogID)
	if err := storage.SetStringSlice(b.kv, storage.KeyViewedBlogs, viewed); err != nil {
		b.log.WithError(err).Warn("failed to persist viewed blogs")
	}
	return blog, true, nil
}

// Like increments the like counter once per device. A repeat attempt
// returns ErrAlreadyLiked without touching the network.
func (b *BlogEngagement) Like(ctx context.Context, blogID string) (*models.Blog, error) {
	if !models.IsValidObjectID(blogID) {
		return nil, &InvalidIDError{ID: blogID}
	}

	liked := storage.GetStringSlice(b.kv, storage.KeyLikedBlogs)
	if contains(liked, blogID) {
		return nil, ErrAlreadyLiked
	}

	blog, err := b.api.IncrementLikes(ctx, blogID)
	if err != nil {
		return nil, err
	}

	liked = append(liked, blogID)
	if err := storage.SetStringSlice(b.kv, storage.KeyLikedBlogs, liked); err != nil {
		b.log.WithError(err).Warn("failed to persist liked blogs")
	}
	return blog, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
