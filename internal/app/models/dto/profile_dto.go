package dto

// ProfileResponse is a user together with every record they own
type ProfileResponse struct {
	UserResponse
	Educations   []EducationResponse   `json:"educations"`
	Certificates []CertificateResponse `json:"certificates"`
	Achievements []AchievementResponse `json:"achievements"`
	Resume       *ResumeResponse       `json:"resume"`
}
