package view

import (
	"fmt"
	"strconv"
	"strings"

	"hellod/internal/app"
)

// LoginProps is the projection rendered by the login screen.
type LoginProps struct {
	LoggedIn    bool
	UserID      int
	DisplayName string
	Avatar      string
}

// SelectLogin projects the login screen's props from state.
func SelectLogin(s *app.State) LoginProps {
	if s == nil || s.User == nil {
		return LoginProps{}
	}
	u := s.User
	return LoginProps{
		LoggedIn:    true,
		UserID:      u.ID,
		DisplayName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Avatar:      u.Avatar,
	}
}

// LoginText renders the login screen's status line.
func LoginText(p LoginProps) string {
	if !p.LoggedIn {
		return "Not logged in. Enter a user id to log in."
	}
	return fmt.Sprintf("Logged in as %s (#%d)", p.DisplayName, p.UserID)
}

// ParseUserID validates user input from the login form.
func ParseUserID(in string) (int, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return 0, fmt.Errorf("user id is required")
	}
	id, err := strconv.Atoi(in)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("user id must be a positive integer, got %q", in)
	}
	return id, nil
}
