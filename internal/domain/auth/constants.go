package auth

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

var ValidRoles = []string{RoleAdmin, RoleManager, RoleUser}
