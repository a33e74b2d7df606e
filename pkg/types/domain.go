package types

// User is the local user entity held in application state.
type User struct {
	// Stable identifier of the user.
	// example: 1
	ID int `json:"id" example:"1"`
	// Given name.
	// example: Jane
	FirstName string `json:"firstName" example:"Jane"`
	// Family name.
	// example: Doe
	LastName string `json:"lastName" example:"Doe"`
	// Avatar image URL.
	// example: https://example.com/avatars/1.png
	Avatar string `json:"avatar" example:"https://example.com/avatars/1.png"`
}

// RemoteUser is the user shape served by the remote users API.
type RemoteUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}
