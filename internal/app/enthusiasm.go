package app

import "hellod/internal/store"

// MinEnthusiasm is the floor of the enthusiasm slice.
const MinEnthusiasm = 1

// ReduceEnthusiasm owns the enthusiasm level. Decrement stops at MinEnthusiasm.
func ReduceEnthusiasm(level int, action store.Action) int {
	a, ok := action.(EnthusiasmAction)
	if !ok {
		return level
	}
	switch a.(type) {
	case IncrementEnthusiasm:
		return level + 1
	case DecrementEnthusiasm:
		return max(MinEnthusiasm, level-1)
	default:
		return level
	}
}
