package types

// Role is an assignable role
type Role struct {
	ID          int     `json:"id_rol"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion"`
}

// UserRole is a role assigned to a user
type UserRole struct {
	Role
	AssignedAt DateTime `json:"fecha_asignacion"`
}

// RoleAssignment is the add/remove role request body
type RoleAssignment struct {
	UserID int `json:"user_id"`
	RoleID int `json:"role_id"`
}
