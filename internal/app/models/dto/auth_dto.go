package dto

// SignupRequest represents an open registration request
type SignupRequest struct {
	Username  string  `json:"username" form:"username" binding:"required,max=150" example:"john_doe"`
	Email     string  `json:"email" form:"email" binding:"required,email,max=254" example:"john@example.com"`
	Password  string  `json:"password" form:"password" binding:"required,min=8,max=128" example:"strongpw123"`
	IsStudent bool    `json:"is_student" form:"is_student"`
	IsAlumni  bool    `json:"is_alumni" form:"is_alumni"`
	IsFaculty bool    `json:"is_faculty" form:"is_faculty"`
	About     *string `json:"about" form:"about"`
	LinkedIn  *string `json:"linkedin" form:"linkedin" binding:"omitempty,url,max=200"`
	GitHub    *string `json:"github" form:"github" binding:"omitempty,url,max=200"`
}

// LoginRequest represents login credentials. Either username or email identifies the account.
type LoginRequest struct {
	Username string `json:"username" binding:"required_without=Email"`
	Email    string `json:"email" binding:"required_without=Username,omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"Bearer"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}
