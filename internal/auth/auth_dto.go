package auth

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
