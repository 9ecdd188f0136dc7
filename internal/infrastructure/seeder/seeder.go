package seeder

import (
	"log"
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	userRepo domain.UserRepository
	invRepo  domain.InventoryRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo domain.UserRepository, invRepo domain.InventoryRepository) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		invRepo:  invRepo,
	}
}

// SeedUsers seeds the database with initial users. Every seeded user gets
// the same starter package handed out on registration.
func (s *Seeder) SeedUsers() error {
	log.Printf("Seeding users...")

	users := []struct {
		id       int64
		username string
		fullName string
		isAdmin  bool
	}{
		{34633089486, "commander", "Supreme Commander", true},
		{34679664254, "warlord1", "First Warlord", false},
		{34616761765, "warlord2", "Second Warlord", false},
		{34673635133, "recruit", "Fresh Recruit", false},
	}

	for _, u := range users {
		existingUser, err := s.userRepo.GetByID(u.id)
		if err != nil {
			log.Printf("Error checking existing user, skipping.")
			continue
		}

		if existingUser != nil {
			log.Printf("User already exists, skipping.")
			continue
		}

		now := time.Now()
		user := &domain.User{
			ID:             u.id,
			Username:       u.username,
			FullName:       u.fullName,
			Coin:           1000,
			Gem:            10,
			Zp:             500,
			Level:          1,
			MinerLevel:     1,
			LastMinerClaim: &now,
			IsAdmin:        u.isAdmin,
		}

		if err := s.userRepo.Create(user); err != nil {
			log.Printf("Error creating user.")
			return err
		}

		if err := s.invRepo.Add(u.id, domain.ItemKindMissile, "short-range missile", 5); err != nil {
			log.Printf("Error granting starter missiles.")
			return err
		}
		log.Printf("Successfully created user.")
	}

	log.Printf("User seeding completed successfully")
	return nil
}
