package session

// Role tags form a closed set. Any other value is rejected at the
// container boundary.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleMentor
}
