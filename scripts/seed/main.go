// Seeds a development database (or the in-memory store, trivially) with one
// teacher and one student so the directory has something to show.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/hamroguru/tutor-api/internal/models"
	"github.com/hamroguru/tutor-api/internal/store"
	"github.com/hamroguru/tutor-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	st, err := store.Open(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	teacher := models.User{
		ID:    "teacher1",
		Email: "alice@example.com",
		Name:  "Alice Teacher",
		Role:  models.RoleTeacher,
	}
	profile := models.TeacherProfile{
		ID:                   "teacher1",
		UserID:               "teacher1",
		Phone:                "1234567890",
		Age:                  30,
		Gender:               "female",
		City:                 "Kathmandu",
		HighestQualification: "MSc",
		Subjects:             models.JoinSubjects([]string{"Math", "Physics"}),
		TeachingMode:         "online",
		Experience:           "5 years",
		RateType:             "hourly",
		RateAmount:           20,
		Availability:         "Weekdays",
		WhatsappNumber:       "1234567890",
		WhatsappConsent:      true,
		AdditionalInfo:       "Experienced tutor",
	}

	if _, _, err := st.RegisterTeacher(ctx, teacher, profile); err != nil {
		logr.Sugar().Fatalw("failed to seed teacher", "error", err)
	}

	student := models.User{
		ID:    "student1",
		Email: "bob@example.com",
		Name:  "Bob Student",
		Role:  models.RoleStudent,
	}
	if _, err := st.UpsertUser(ctx, student); err != nil {
		logr.Sugar().Fatalw("failed to seed student", "error", err)
	}

	logr.Sugar().Infow("seeding complete", "store", st.Kind())
}
