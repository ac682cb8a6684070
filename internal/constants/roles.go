package constants

// Roles match the dashboard role selector.
const (
	TeamMember   = "team_member"
	ScrumMaster  = "scrum_master"
	ProductOwner = "product_owner"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case TeamMember, ScrumMaster, ProductOwner:
		return true
	}
	return false
}
