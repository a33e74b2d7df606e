package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellod/internal/store"
	"hellod/pkg/types"
)

func TestStore_SetUserThenState(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Dispatch(SetUser{User: types.User{ID: 1, FirstName: "A", LastName: "B", Avatar: "x"}}))
	require.NotNil(t, s.State().User)
	assert.Equal(t, types.User{ID: 1, FirstName: "A", LastName: "B", Avatar: "x"}, *s.State().User)
	assert.Equal(t, 1, s.State().EnthusiasmLevel)
}

func TestStore_ReplayIsDeterministic(t *testing.T) {
	actions := []store.Action{
		IncrementEnthusiasm{},
		SetUser{User: types.User{ID: 1, FirstName: "Jane"}},
		foreignAction{},
		DecrementEnthusiasm{},
		DecrementEnthusiasm{},
		SetUser{User: types.User{ID: 2, FirstName: "John", Avatar: "j.png"}},
		IncrementEnthusiasm{},
		ClearUser{},
		IncrementEnthusiasm{},
	}
	run := func() *State {
		s := NewStore(nil)
		for _, a := range actions {
			require.NoError(t, s.Dispatch(a))
		}
		return s.State()
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("replay diverged (-first +second):\n%s", diff)
	}
}

func TestStore_EventsReportChanges(t *testing.T) {
	pub := store.NewMemoryPublisher()
	s := NewStore(pub)
	require.NoError(t, s.Dispatch(foreignAction{}))
	require.NoError(t, s.Dispatch(IncrementEnthusiasm{}))
	evts := pub.Events()
	require.Len(t, evts, 2)
	assert.False(t, evts[0].Changed)
	assert.True(t, evts[1].Changed)
}

func TestResponse_CopiesUser(t *testing.T) {
	st := &State{User: &types.User{ID: 1, FirstName: "A"}, EnthusiasmLevel: 2}
	resp := Response(st)
	resp.User.FirstName = "mutated"
	assert.Equal(t, "A", st.User.FirstName)
	assert.Equal(t, 2, resp.EnthusiasmLevel)
	assert.Equal(t, types.StateResponse{}, Response(nil))
}
