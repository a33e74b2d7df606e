package view

import (
	"errors"
	"strings"

	"hellod/internal/app"
)

// DefaultName is greeted when no user is loaded.
const DefaultName = "stranger"

// ErrNotEnthusiastic is returned when asked to greet with a level below 1.
var ErrNotEnthusiastic = errors.New("you could be a little more enthusiastic. :D")

// HelloProps is the projection rendered by the hello screen.
type HelloProps struct {
	Name            string
	EnthusiasmLevel int
}

// SelectHello projects the hello screen's props from state.
func SelectHello(s *app.State) HelloProps {
	if s == nil {
		return HelloProps{Name: DefaultName}
	}
	name := DefaultName
	if s.User != nil && s.User.FirstName != "" {
		name = s.User.FirstName
	}
	return HelloProps{Name: name, EnthusiasmLevel: s.EnthusiasmLevel}
}

// Greeting renders "Hello <name>" followed by one '!' per enthusiasm level.
func Greeting(p HelloProps) (string, error) {
	if p.EnthusiasmLevel <= 0 {
		return "", ErrNotEnthusiastic
	}
	return "Hello " + p.Name + strings.Repeat("!", p.EnthusiasmLevel), nil
}
