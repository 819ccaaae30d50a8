package auth

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Permissions - разрешения по ролям
var Permissions = map[string][]string{
	RoleAdmin: {
		"listings:write",
		"listings:delete",
		"profiles:write",
	},
	RoleUser: {
		"listings:write:self",
		"listings:delete:self",
		"profiles:write:self",
	},
}

func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanModify - владелец с разрешением ":self" либо роль с полным разрешением
func CanModify(role, permission string, isOwner bool) bool {
	if HasPermission(role, permission) {
		return true
	}
	return isOwner && HasPermission(role, permission+":self")
}

func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.Role == RoleAdmin
}
