package app

import "hellod/pkg/types"

// Action tags. Each tag names exactly one mutation intent.
const (
	TypeSetUser             = "user/SET"
	TypeClearUser           = "user/CLEAR"
	TypeIncrementEnthusiasm = "enthusiasm/INCREMENT"
	TypeDecrementEnthusiasm = "enthusiasm/DECREMENT"
)

// UserAction is the closed set of actions owned by the user slice.
type UserAction interface {
	Type() string
	userAction()
}

// SetUser replaces the user slice wholesale.
type SetUser struct{ User types.User }

// ClearUser empties the user slice.
type ClearUser struct{}

func (SetUser) Type() string   { return TypeSetUser }
func (ClearUser) Type() string { return TypeClearUser }
func (SetUser) userAction()    {}
func (ClearUser) userAction()  {}

// EnthusiasmAction is the closed set of actions owned by the enthusiasm slice.
type EnthusiasmAction interface {
	Type() string
	enthusiasmAction()
}

type IncrementEnthusiasm struct{}
type DecrementEnthusiasm struct{}

func (IncrementEnthusiasm) Type() string      { return TypeIncrementEnthusiasm }
func (DecrementEnthusiasm) Type() string      { return TypeDecrementEnthusiasm }
func (IncrementEnthusiasm) enthusiasmAction() {}
func (DecrementEnthusiasm) enthusiasmAction() {}
