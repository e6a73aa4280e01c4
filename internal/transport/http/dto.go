package http

type TokenResponse struct {
	Token string `json:"token"`
}

type TokensListResponse struct {
	Tokens []string `json:"tokens"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
