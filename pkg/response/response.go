package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Site     string `json:"site"`
}

// LoginFailureResponse distinguishes a site-forced password reset from bad
// credentials; the client shows a different screen for each.
type LoginFailureResponse struct {
	Error         string `json:"error"`
	RequiresReset bool   `json:"requires_reset"`
}
