package models

// Session is the persisted login payload. Either every field is present
// (authenticated) or the session is treated as absent; partial state is never
// valid.
type Session struct {
	Token      string `json:"token"`
	TokenType  string `json:"tokenType"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	AuthHeader string `json:"authHeader"`
}

// Complete reports whether every session field is populated.
func (s Session) Complete() bool {
	return s.Token != "" && s.TokenType != "" && s.UserID != "" &&
		s.Email != "" && s.Name != "" && s.Role != "" && s.AuthHeader != ""
}
