package dto

// RegisterRequest is the student/basic registration payload. UserID is
// optional; one is generated when absent. Password is optional so that
// externally provisioned accounts can exist, but an account without one can
// never authenticate.
type RegisterRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// LoginRequest carries login credentials. The password is always verified
// against the stored bcrypt hash.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterTeacherRequest is the teacher registration payload. Numeric and
// boolean fields tolerate string encodings; subjects tolerates a pre-joined
// string.
type RegisterTeacherRequest struct {
	UserID               string      `json:"userId" validate:"required"`
	Email                string      `json:"email" validate:"required,email"`
	Name                 string      `json:"name"`
	Password             string      `json:"password" validate:"omitempty,min=6"`
	Phone                string      `json:"phone"`
	Age                  FlexInt     `json:"age"`
	Gender               string      `json:"gender"`
	Address              string      `json:"address"`
	District             string      `json:"district"`
	City                 string      `json:"city"`
	HighestQualification string      `json:"highestQualification"`
	Subjects             SubjectList `json:"subjects"`
	TeachingMode         string      `json:"teachingMode"`
	Experience           string      `json:"experience"`
	RateType             string      `json:"rateType"`
	RateAmount           FlexFloat   `json:"rateAmount"`
	Availability         string      `json:"availability"`
	WhatsappNumber       string      `json:"whatsappNumber"`
	WhatsappConsent      FlexBool    `json:"whatsappConsent"`
	AdditionalInfo       string      `json:"additionalInfo"`
}

// UpdateProfileRequest is the profile-edit payload. Only supplied fields are
// applied; id/userId are taken from the session, never from the body.
type UpdateProfileRequest struct {
	Phone                *string      `json:"phone"`
	Age                  *FlexInt     `json:"age"`
	Gender               *string      `json:"gender"`
	Address              *string      `json:"address"`
	District             *string      `json:"district"`
	City                 *string      `json:"city"`
	HighestQualification *string      `json:"highestQualification"`
	Subjects             *SubjectList `json:"subjects"`
	TeachingMode         *string      `json:"teachingMode"`
	Experience           *string      `json:"experience"`
	RateType             *string      `json:"rateType"`
	RateAmount           *FlexFloat   `json:"rateAmount"`
	Availability         *string      `json:"availability"`
	WhatsappNumber       *string      `json:"whatsappNumber"`
	WhatsappConsent      *FlexBool    `json:"whatsappConsent"`
	AdditionalInfo       *string      `json:"additionalInfo"`
}

// DeleteTeacherRequest is the admin removal payload.
type DeleteTeacherRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}
