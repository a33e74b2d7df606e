package userapi

import "hellod/pkg/types"

// ToUser maps the remote user shape onto the local entity:
//
//	id         -> ID
//	first_name -> FirstName
//	last_name  -> LastName
//	avatar     -> Avatar
func ToUser(r types.RemoteUser) types.User {
	return types.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Avatar:    r.Avatar,
	}
}
