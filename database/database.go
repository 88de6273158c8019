package database

import (
	"fmt"
	"log"

	config "github.com/startovate/lms_platform/configs"
	"github.com/startovate/lms_platform/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.EasypaisaPayment{},
		&models.Payment{},
		&models.Feedback{},
		&models.Canvas{},
		&models.CanvasComponent{},
		&models.TemplateEntry{},
		&models.StepDescription{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedSuperadmin() {
	adminEmail := config.Config("SUPERADMIN_EMAIL")
	adminPassword := config.Config("SUPERADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ Superadmin credentials not configured, skipping seed.")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for superadmin user: %v", err)
	}
	if count > 0 {
		log.Println("Superadmin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash superadmin password: %v", err)
	}

	superadmin := models.User{
		Name:     config.Config("SUPERADMIN_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleSuperadmin,
	}
	if err := DB.Create(&superadmin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed superadmin user: %v", err)
	}

	log.Println("✅ Superadmin user seeded successfully")
}

// SeedStepDescriptions loads the checklist copy shown in exported documents.
// Inserts are idempotent on (component, step).
func SeedStepDescriptions() {
	type seed struct {
		component   string
		step        int
		description string
	}
	seeds := []seed{
		{"Problem Identification", 1, "State the problem and support each claim with evidence."},
		{"Problem Identification", 2, "Map the stakeholders affected and how the problem impacts them."},
		{"Literature Search", 1, "Record search keywords, databases and result counts."},
		{"Literature Search", 2, "Summarize key papers, their findings and the gaps they leave."},
		{"Existing Solutions", 1, "Catalogue current solutions with their strengths and weaknesses."},
		{"Market Landscape", 1, "Identify competitors, target segments and market size."},
		{"Novelty", 1, "Articulate what is new and how it differs from prior work."},
		{"Research Question", 1, "Formulate research questions and matching hypotheses."},
		{"Research Methodology", 1, "Choose methods and justify each choice."},
		{"Key Resources", 1, "List required resources and their availability."},
		{"Funding", 1, "Match funding sources to TRL levels and deadlines."},
		{"Team Capacities", 1, "Map team members to expertise and project roles."},
		{"Research Outcome", 1, "Define expected outcomes and how they will be measured."},
	}

	for _, s := range seeds {
		var count int64
		DB.Model(&models.StepDescription{}).
			Where("component_name = ? AND step_number = ?", s.component, s.step).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.StepDescription{
			ComponentName: s.component,
			StepNumber:    s.step,
			Description:   s.description,
		}).Error; err != nil {
			log.Printf("🔥 Failed to seed step description for %s/%d: %v", s.component, s.step, err)
		}
	}
}
