package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Handlers and middleware check membership here instead of comparing role
// strings inline, so the role-to-capability mapping lives in one place.
var PermissionRoles = map[string][]string{
	ViewCompanies:   {TeamMember, ScrumMaster, ProductOwner},
	ManageCompanies: {ScrumMaster, ProductOwner},
	Invest:          {TeamMember, ScrumMaster},
	ViewPortfolio:   {TeamMember, ScrumMaster},
	ViewTeamData:    {ScrumMaster, ProductOwner},
	ManageUsers:     {ProductOwner},
	EndSprint:       {ProductOwner},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
