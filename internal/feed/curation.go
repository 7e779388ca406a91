package feed

import (
	"context"

	"feedc/internal/models"
)

// SetPinned toggles the pinned flag of the ACTIVE post carrying the given
// uniqueId property on the page.
func (s *Service) SetPinned(ctx context.Context, pageID uint, uniqueID string, pinned bool) (*models.Post, error) {
	post, err := s.posts.FindByUniqueID(ctx, pageID, uniqueID)
	if err != nil {
		return nil, wrapStorageError(err)
	}

	post.Pinned = pinned
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, wrapStorageError(err)
	}
	return post, nil
}

// SetHidden writes the post's hidden flag property. Hiding also removes the
// post from the category index so the category feed stops surfacing it.
func (s *Service) SetHidden(ctx context.Context, pageID uint, uniqueID string, hidden bool) (*models.Post, error) {
	post, err := s.posts.FindByUniqueID(ctx, pageID, uniqueID)
	if err != nil {
		return nil, wrapStorageError(err)
	}

	if post.Properties == nil {
		post.Properties = models.PropertyMap{}
	}
	flag, ok := post.Properties[models.PropHidden]
	if !ok {
		flag = models.PropertyValue{
			ID:   models.PropHidden,
			Name: "isHidden",
			Type: models.PropertyTypeBoolean,
		}
	}
	flag.Value = hidden
	post.Properties[models.PropHidden] = flag

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, wrapStorageError(err)
	}
	if hidden {
		if err := s.postCategories.DeleteByPost(ctx, post.ID); err != nil {
			return nil, wrapStorageError(err)
		}
	}
	return post, nil
}
