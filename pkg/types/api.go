package types

import "encoding/json"

// GetUserResponse is the envelope returned by GET /users/{id} on the remote API.
type GetUserResponse struct {
	Data RemoteUser `json:"data"`
}

// StateResponse is returned by GET /state and POST /actions.
type StateResponse struct {
	// Loaded user, null until one is set.
	User *User `json:"user"`
	// Current enthusiasm level (never below 1).
	// example: 3
	EnthusiasmLevel int `json:"enthusiasmLevel" example:"3"`
}

// ActionRequest is the payload of POST /actions.
type ActionRequest struct {
	// Action tag.
	// example: enthusiasm/INCREMENT
	Type string `json:"type" example:"enthusiasm/INCREMENT"`
	// Optional payload whose shape is fixed per tag.
	Payload json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

// LoadUserResponse is returned by POST /users/{id}/load.
type LoadUserResponse struct {
	User  User          `json:"user"`
	State StateResponse `json:"state"`
}

// ViewResponse carries a rendered view and the projection it was rendered from.
type ViewResponse struct {
	// View name.
	// example: hello
	View string `json:"view" example:"hello"`
	// Rendered text.
	// example: Hello Jane!!!
	Text string `json:"text" example:"Hello Jane!!!"`
	// Projection the text was rendered from.
	Props any `json:"props" swaggertype:"object"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
