package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"hellod/internal/store"
	"hellod/pkg/types"
)

// ErrUnknownActionType is returned by DecodeAction for tags outside the
// closed action set.
var ErrUnknownActionType = errors.New("unknown action type")

// DecodeAction maps a wire action onto the closed action set.
func DecodeAction(req types.ActionRequest) (store.Action, error) {
	switch req.Type {
	case TypeSetUser:
		var u types.User
		if len(req.Payload) == 0 {
			return nil, fmt.Errorf("%s: payload is required", req.Type)
		}
		if err := json.Unmarshal(req.Payload, &u); err != nil {
			return nil, fmt.Errorf("%s: decode payload: %w", req.Type, err)
		}
		if u.ID <= 0 {
			return nil, fmt.Errorf("%s: payload id must be a positive integer", req.Type)
		}
		return SetUser{User: u}, nil
	case TypeClearUser:
		return ClearUser{}, nil
	case TypeIncrementEnthusiasm:
		return IncrementEnthusiasm{}, nil
	case TypeDecrementEnthusiasm:
		return DecrementEnthusiasm{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, req.Type)
	}
}
