package domain

import (
	"fmt"
	"wa-directory/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type BlockUserCommand struct {
	JID    string      `validate:"required"`
	Action BlockAction `validate:"required,oneof=add remove"`
}

type PresenceCommand struct {
	JID      string       `validate:"required"`
	Presence PresenceType `validate:"required,oneof=available composing recording paused unavailable"`
}

type LoadChatsCommand struct {
	Count  int     `validate:"gt=0"`
	Before *Cursor `validate:"omitempty"`
	Search string  `validate:"max=256"`
}

type ProfilePictureCommand struct {
	JID   string `validate:"required"`
	Image []byte `validate:"required,min=1"`
}

type ProfileNameCommand struct {
	Name string `validate:"required,max=25"`
}

type StatusCommand struct {
	Status string `validate:"max=139"`
}

// Validate checks the struct tags of any command above.
func Validate(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
