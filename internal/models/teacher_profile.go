package models

import (
	"strings"
	"time"
)

// SubjectsDelimiter joins subject arrays into the single string column.
// Splitting a stored value on it must reproduce the original ordered list.
const SubjectsDelimiter = ", "

// JoinSubjects flattens a subject list into the stored representation.
func JoinSubjects(subjects []string) string {
	return strings.Join(subjects, SubjectsDelimiter)
}

// SplitSubjects reverses JoinSubjects. An empty stored value yields nil.
func SplitSubjects(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, SubjectsDelimiter)
}

// TeacherProfile holds the tutoring details of a teacher account. ID always
// equals the owning User.ID, enforcing exactly one profile per teacher;
// UserID is kept alongside so either key can drive a lookup.
type TeacherProfile struct {
	ID                   string    `db:"id" json:"id"`
	UserID               string    `db:"user_id" json:"userId"`
	Phone                string    `db:"phone" json:"phone"`
	Age                  int       `db:"age" json:"age"`
	Gender               string    `db:"gender" json:"gender"`
	Address              string    `db:"address" json:"address"`
	District             string    `db:"district" json:"district"`
	City                 string    `db:"city" json:"city"`
	HighestQualification string    `db:"highest_qualification" json:"highestQualification"`
	Subjects             string    `db:"subjects" json:"subjects"`
	TeachingMode         string    `db:"teaching_mode" json:"teachingMode"`
	Experience           string    `db:"experience" json:"experience"`
	RateType             string    `db:"rate_type" json:"rateType"`
	RateAmount           float64   `db:"rate_amount" json:"rateAmount"`
	Availability         string    `db:"availability" json:"availability"`
	WhatsappNumber       string    `db:"whatsapp_number" json:"whatsappNumber"`
	WhatsappConsent      bool      `db:"whatsapp_consent" json:"whatsappConsent"`
	AdditionalInfo       string    `db:"additional_info" json:"additionalInfo"`
	Rating               float64   `db:"rating" json:"rating"`
	Reviews              int       `db:"reviews" json:"reviews"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// TeacherProfilePatch carries mutable profile fields for the profile-edit
// flow. ID and UserID are deliberately absent: they never change after
// registration. Nil fields are left untouched.
type TeacherProfilePatch struct {
	Phone                *string
	Age                  *int
	Gender               *string
	Address              *string
	District             *string
	City                 *string
	HighestQualification *string
	Subjects             *string
	TeachingMode         *string
	Experience           *string
	RateType             *string
	RateAmount           *float64
	Availability         *string
	WhatsappNumber       *string
	WhatsappConsent      *bool
	AdditionalInfo       *string
}

// TeacherListing couples a profile with its owning user, the shape every
// directory read returns.
type TeacherListing struct {
	ID      string         `json:"id"`
	Profile TeacherProfile `json:"teacherProfile"`
	User    *User          `json:"userData"`
}
