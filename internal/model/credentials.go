package model

// Credentials are a team's object-store credentials. AccessKey and SecretKey
// are stored encrypted at rest and only ever decrypted inside the process.
type Credentials struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}
