package request

type CreateAPIKey struct {
	Name   string   `json:"name" validate:"required,max=128"`
	Scopes []string `json:"scopes" validate:"required,min=1,dive,required"`
}
