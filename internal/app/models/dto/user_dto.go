package dto

import "github.com/yigit/campusnet/internal/app/models"

// UserResponse is the public representation of a user. It never carries the
// password hash.
type UserResponse struct {
	ID             int64   `json:"id" example:"1"`
	Username       string  `json:"username" example:"john_doe"`
	Email          string  `json:"email" example:"john@example.com"`
	About          *string `json:"about"`
	LinkedIn       *string `json:"linkedin"`
	GitHub         *string `json:"github"`
	IsStudent      bool    `json:"is_student"`
	IsAlumni       bool    `json:"is_alumni"`
	IsFaculty      bool    `json:"is_faculty"`
	ProfilePicture *string `json:"profile_picture"`
}

// NewUserResponse converts a models.User to its public representation
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		About:          u.About,
		LinkedIn:       u.LinkedIn,
		GitHub:         u.GitHub,
		IsStudent:      u.IsStudent,
		IsAlumni:       u.IsAlumni,
		IsFaculty:      u.IsFaculty,
		ProfilePicture: u.ProfilePicture,
	}
}

// UpdateUserRequest carries a full (PUT) or partial (PATCH) user update.
// Absent fields are left unchanged; an empty string clears an optional text field.
type UpdateUserRequest struct {
	Username  *string `json:"username" form:"username"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	IsStudent *bool   `json:"is_student" form:"is_student"`
	IsAlumni  *bool   `json:"is_alumni" form:"is_alumni"`
	IsFaculty *bool   `json:"is_faculty" form:"is_faculty"`
	About     *string `json:"about" form:"about"`
	LinkedIn  *string `json:"linkedin" form:"linkedin" binding:"omitempty,url,max=200"`
	GitHub    *string `json:"github" form:"github" binding:"omitempty,url,max=200"`
}

// Missing lists the fields a full update must carry but this one does not
func (r *UpdateUserRequest) Missing() []string {
	var missing []string
	if r.Username == nil {
		missing = append(missing, "username")
	}
	if r.Email == nil {
		missing = append(missing, "email")
	}
	return missing
}

// NewUserResponses converts a slice, never returning nil
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
