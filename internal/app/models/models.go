package models

// FileFolder names the storage folder a blob is filed under
type FileFolder string

const (
	FolderProfilePictures FileFolder = "profile_pics"
	FolderCertificates    FileFolder = "certificates"
	FolderAchievements    FileFolder = "achievements"
	FolderResumes         FileFolder = "resumes"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"
