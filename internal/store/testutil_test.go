package store

// Test fixtures: a two-slice state tree with its own closed action set.

type testState struct {
	Count int
	Name  *string
	Extra string
}

type incr struct{ By int }

func (incr) Type() string { return "test/INCR" }

type rename struct{ To string }

func (rename) Type() string { return "test/RENAME" }

type unknown struct{}

func (unknown) Type() string { return "test/UNKNOWN" }

type untagged struct{}

func (untagged) Type() string { return "" }

func reduceCount(n int, a Action) int {
	switch a := a.(type) {
	case incr:
		return n + a.By
	}
	return n
}

func reduceName(n *string, a Action) *string {
	switch a := a.(type) {
	case rename:
		to := a.To
		return &to
	}
	return n
}

var testReducer = Combine(
	Field("count", func(s *testState) *int { return &s.Count }, reduceCount),
	Field("name", func(s *testState) **string { return &s.Name }, reduceName),
)

func newTestStore() *Store[*testState] {
	return NewWithConfig(Config[*testState]{
		Reducer: testReducer,
		Initial: &testState{Extra: "kept"},
		Equal:   SameRef[testState],
	})
}
