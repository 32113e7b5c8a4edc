package request

// CreateTeam is the request body for creating a team.
type CreateTeam struct {
	Name string `json:"name" validate:"required,teamname"`
}
