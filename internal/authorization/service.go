package authorization

import (
	"context"
	"errors"
)

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidClub   = errors.New("invalid_club")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)

// Service is the access gate. Every protected operation asks it
// whether the actor may perform the action on the object within the
// club's domain.
type Service interface {
	Authorize(ctx context.Context, actor string, clubID string, object string, action string) error
}
