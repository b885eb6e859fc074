package cache

import (
	"context"

	"github.com/teranos/semval/errors"
)

// Store persists containers. Read returns an empty container, not an
// error, for an unknown hash.
type Store interface {
	Read(ctx context.Context, hash string) (*Container, error)
	Save(ctx context.Context, c *Container) error
	Delete(ctx context.Context, hash string) error
}

// Purge deletes hash together with every hash on its linked list.
// It returns the number of containers removed.
func Purge(ctx context.Context, store Store, hash string) (int, error) {
	c, err := store.Read(ctx, hash)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s for purge", hash)
	}

	purged := 0
	for _, linked := range c.Linked {
		if err := store.Delete(ctx, linked); err != nil {
			return purged, errors.Wrapf(err, "purge linked %s of %s", linked, hash)
		}
		purged++
	}
	if err := store.Delete(ctx, hash); err != nil {
		return purged, errors.Wrapf(err, "purge %s", hash)
	}
	return purged + 1, nil
}
