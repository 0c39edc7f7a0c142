package models

// Roles carried in the access token
const (
	RolePilgrim = "pilgrim"
	RoleOwner   = "owner"
)
