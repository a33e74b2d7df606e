package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hellod/internal/app"
	"hellod/internal/hello"
	"hellod/internal/store"
	"hellod/internal/userapi"
	"hellod/pkg/types"
)

type mockService struct {
	state       *app.State
	stateErr    error
	dispatchErr error
	dispatched  []store.Action
	loadErr     error
	loadFn      func(ctx context.Context, id int) (types.User, error)
	loadedIDs   []int
	ready       bool
}

func (m *mockService) State(ctx context.Context) (*app.State, error) {
	if m.stateErr != nil {
		return nil, m.stateErr
	}
	if m.state == nil {
		return app.InitialState(), nil
	}
	return m.state, nil
}

func (m *mockService) Dispatch(ctx context.Context, a store.Action) (*app.State, error) {
	if m.dispatchErr != nil {
		return nil, m.dispatchErr
	}
	m.dispatched = append(m.dispatched, a)
	m.state = app.Reduce(m.state, a)
	return m.state, nil
}

func (m *mockService) LoadUser(ctx context.Context, id int) (types.User, error) {
	m.loadedIDs = append(m.loadedIDs, id)
	if m.loadFn != nil {
		return m.loadFn(ctx, id)
	}
	if m.loadErr != nil {
		return types.User{}, m.loadErr
	}
	u := types.User{ID: id, FirstName: "Janet", LastName: "Weaver"}
	m.state = app.Reduce(m.state, app.SetUser{User: u})
	return u, nil
}

func (m *mockService) Ready() bool { return m.ready }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestStateHandler_Initial(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.User != nil || body.EnthusiasmLevel != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestStateHandler_WireKeys(t *testing.T) {
	st := &app.State{User: &types.User{ID: 1, FirstName: "A", LastName: "B", Avatar: "x"}, EnthusiasmLevel: 2}
	r := NewMux(&mockService{state: st})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(raw["enthusiasmLevel"]) != "2" {
		t.Fatalf("enthusiasmLevel=%s body=%s", raw["enthusiasmLevel"], w.Body.String())
	}
	if !strings.Contains(string(raw["user"]), `"firstName":"A"`) {
		t.Fatalf("user=%s", raw["user"])
	}
}

func TestStateHandler_LoopClosedMaps503(t *testing.T) {
	r := NewMux(&mockService{stateErr: store.ErrLoopClosed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestActions_IncrementReturnsNewState(t *testing.T) {
	svc := &mockService{state: app.InitialState()}
	r := NewMux(svc)
	w := postJSON(t, r, "/actions", `{"type":"enthusiasm/INCREMENT"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.EnthusiasmLevel != 2 {
		t.Fatalf("level=%d, want 2", body.EnthusiasmLevel)
	}
	if len(svc.dispatched) != 1 || svc.dispatched[0].Type() != app.TypeIncrementEnthusiasm {
		t.Fatalf("dispatched=%v", svc.dispatched)
	}
}

func TestActions_SetUserPayload(t *testing.T) {
	svc := &mockService{state: app.InitialState()}
	r := NewMux(svc)
	w := postJSON(t, r, "/actions", `{"type":"user/SET","payload":{"id":7,"firstName":"Michael","lastName":"Lawson","avatar":"a.png"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.User == nil || body.User.ID != 7 || body.User.FirstName != "Michael" {
		t.Fatalf("user=%+v", body.User)
	}
}

func TestActions_UnknownTypeIs400(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := postJSON(t, r, "/actions", `{"type":"SOMETHING_ELSE"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(svc.dispatched) != 0 {
		t.Fatalf("unknown action must not be dispatched")
	}
	var e types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("json: %v", err)
	}
	if e.Code != http.StatusBadRequest || !strings.Contains(e.Error, "unknown action type") {
		t.Fatalf("error body=%+v", e)
	}
}

func TestActions_RequiresJSONContentType(t *testing.T) {
	r := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/actions", strings.NewReader(`{"type":"user/CLEAR"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", w.Code)
	}
}

func TestActions_InvalidJSON(t *testing.T) {
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/actions", `{"type":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestActions_BodyTooLarge(t *testing.T) {
	SetMaxBodyBytes(16)
	t.Cleanup(func() { SetMaxBodyBytes(0) })
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/actions", `{"type":"enthusiasm/INCREMENT","payload":null}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestActions_ReentrantMaps409(t *testing.T) {
	err := fmt.Errorf("%w: %s", store.ErrReentrantDispatch, app.TypeClearUser)
	r := NewMux(&mockService{dispatchErr: err})
	w := postJSON(t, r, "/actions", `{"type":"user/CLEAR"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLoadUser_OK(t *testing.T) {
	svc := &mockService{state: app.InitialState()}
	r := NewMux(svc)
	w := postJSON(t, r, "/users/2/load", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.LoadUserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.User.ID != 2 || body.State.User == nil || body.State.User.ID != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(svc.loadedIDs) != 1 || svc.loadedIDs[0] != 2 {
		t.Fatalf("loaded=%v", svc.loadedIDs)
	}
}

func TestLoadUser_NonNumericIDIs400(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := postJSON(t, r, "/users/abc/load", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(svc.loadedIDs) != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestLoadUser_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid id", userapi.ErrInvalidUserID(0), http.StatusBadRequest},
		{"remote 404", &userapi.StatusError{Code: 404, URL: "u"}, http.StatusNotFound},
		{"remote 500", &userapi.StatusError{Code: 500, URL: "u"}, http.StatusBadGateway},
		{"transport", errors.New("users api: get u: connection refused"), http.StatusBadGateway},
		{"timeout", fmt.Errorf("users api: get u: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"no loader", hello.ErrNoUserLoader, http.StatusServiceUnavailable},
		{"http error", mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewMux(&mockService{loadErr: c.err})
			w := postJSON(t, r, "/users/3/load", "")
			if w.Code != c.want {
				t.Fatalf("expected %d, got %d", c.want, w.Code)
			}
		})
	}
}

func TestViews_HelloDefaults(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/views/hello", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ViewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.View != "hello" || body.Text != "Hello stranger!" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestViews_HelloUsesFirstName(t *testing.T) {
	st := &app.State{User: &types.User{ID: 1, FirstName: "George"}, EnthusiasmLevel: 3}
	r := NewMux(&mockService{state: st})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/views/hello", nil))
	if !strings.Contains(w.Body.String(), "Hello George!!!") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestViews_HelloNotEnthusiastic(t *testing.T) {
	r := NewMux(&mockService{state: &app.State{EnthusiasmLevel: 0}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/views/hello", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestViews_Login(t *testing.T) {
	st := &app.State{User: &types.User{ID: 4, FirstName: "Eve", LastName: "Holt"}, EnthusiasmLevel: 1}
	r := NewMux(&mockService{state: st})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/views/login", nil))
	var body types.ViewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.View != "login" || !strings.Contains(body.Text, "Eve Holt (#4)") {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	r := NewMux(&mockService{ready: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "starting") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestSecurityHeader(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff header=%q", got)
	}
}
