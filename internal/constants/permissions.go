package constants

const (
	ViewCompanies   = "view_companies"
	ManageCompanies = "manage_companies"
	Invest          = "invest"
	ViewPortfolio   = "view_portfolio"
	ViewTeamData    = "view_team_data"
	ManageUsers     = "manage_users"
	EndSprint       = "end_sprint"
)
