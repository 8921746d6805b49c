package deck

import (
	"errors"
	"fmt"

	"github.com/republica-game/republica/game"
)

var (
	ErrMissingID     = errors.New("card has no ID")
	ErrMissingTitle  = errors.New("card has no title")
	ErrTooFewOptions = errors.New("card needs at least two options")
	ErrEmptyOption   = errors.New("option has no text")
	ErrNoEffects     = errors.New("option has no effects")
	ErrUnknownKey    = errors.New("unknown effect key")
	ErrBadRoleScope  = errors.New("card scoped to a non-assignable role")
	ErrDuplicateCard = errors.New("duplicate card ID")
	ErrUnknownCardID = errors.New("unknown card ID")
)

// Card is one dilemma from the catalog. Role scopes the card to a character;
// the zero value means any player may draw it.
type Card struct {
	ID      string
	Title   string
	Dilemma string
	Role    game.Role
	Options []Option
}

// Option is one selectable answer to a dilemma.
type Option struct {
	Text    string
	Effects game.Effects
}

// Validate checks a card against the effect-key and role enums. The catalog
// is validated once at load time so resolution never sees a malformed effect.
func (c Card) Validate() error {
	if c.ID == "" {
		return ErrMissingID
	}
	if c.Title == "" {
		return fmt.Errorf("%w: %s", ErrMissingTitle, c.ID)
	}
	if len(c.Options) < 2 {
		return fmt.Errorf("%w: %s", ErrTooFewOptions, c.ID)
	}
	if c.Role != "" && !assignable(c.Role) && c.Role != game.RoleOportunista {
		return fmt.Errorf("%w: %s is scoped to %q", ErrBadRoleScope, c.ID, c.Role)
	}
	for i, opt := range c.Options {
		if opt.Text == "" {
			return fmt.Errorf("%w: %s option %d", ErrEmptyOption, c.ID, i)
		}
		if len(opt.Effects) == 0 {
			return fmt.Errorf("%w: %s option %d", ErrNoEffects, c.ID, i)
		}
		for _, eff := range opt.Effects {
			if !game.KnownKey(eff.Key) {
				return fmt.Errorf("%w: %s option %d uses %q", ErrUnknownKey, c.ID, i, eff.Key)
			}
		}
	}
	return nil
}
