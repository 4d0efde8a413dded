package usecase

import (
	"errors"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// wrapRepoErr lets domain errors pass through and tags everything else as a
// persistence failure.
func wrapRepoErr(err error) error {
	if errors.Is(err, chat.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
