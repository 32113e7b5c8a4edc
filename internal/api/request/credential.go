package request

// PutCredentials is the request body for storing a team's object-store
// credentials.
type PutCredentials struct {
	Endpoint  string `json:"endpoint" validate:"required,url"`
	AccessKey string `json:"access_key" validate:"required"`
	SecretKey string `json:"secret_key" validate:"required"`
}
