package server

import (
	"errors"

	"github.com/reelforge/reelforge/pkg/store"
)

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, store.ErrConflict)
}
