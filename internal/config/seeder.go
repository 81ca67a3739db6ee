package config

import (
	"log"
	"time"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedPrograms(); err != nil {
		log.Printf("⚠️ Program seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName:     "Quản trị viên",
		Email:        "admin@langson.gov.vn",
		PasswordHash: hashedPassword,
		Role:         "ADMIN",
		Status:       "active",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedPrograms seeds the initial support programs
func (s *Seeder) seedPrograms() error {
	var count int64
	s.db.Model(&models.SupportProgram{}).Count(&count)
	if count > 0 {
		return nil // Programs already seeded
	}

	now := time.Now()
	yearEnd := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())

	programs := []*models.SupportProgram{
		{
			Code:      "HTSX",
			Name:      "Hỗ trợ sản xuất nông nghiệp",
			Type:      "production",
			Amount:    5000000,
			StartDate: &now,
			EndDate:   &yearEnd,
			Status:    "active",
		},
		{
			Code:      "HTKK",
			Name:      "Hỗ trợ hộ nghèo khó khăn",
			Type:      "poverty",
			Amount:    3000000,
			StartDate: &now,
			EndDate:   &yearEnd,
			Status:    "active",
		},
		{
			Code:      "HTTT",
			Name:      "Hỗ trợ thiên tai",
			Type:      "disaster",
			Amount:    10000000,
			StartDate: &now,
			EndDate:   &yearEnd,
			Status:    "active",
		},
	}

	for _, p := range programs {
		if err := s.db.Create(p).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d support programs", len(programs))
	return nil
}
