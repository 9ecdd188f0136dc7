package repository

import (
	"errors"
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements domain.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction.
func (r *UserRepository) WithTransaction(tx *gorm.DB) domain.UserRepository {
	if tx == nil {
		return r
	}
	return &UserRepository{db: tx}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	var user domain.User
	result := r.db.Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByIDForUpdate retrieves a user by ID with a row lock, serializing
// concurrent writers on the same row.
func (r *UserRepository) GetByIDForUpdate(id int64) (*domain.User, error) {
	var user domain.User
	result := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	var user domain.User
	result := r.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

// Update updates an existing user
func (r *UserRepository) Update(user *domain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

// ListIDs returns every user id, for best-effort batch operations.
func (r *UserRepository) ListIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&domain.User{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// AggregateStats sums the global counters across all users.
func (r *UserRepository) AggregateStats() (*domain.GlobalStats, error) {
	var stats domain.GlobalStats
	err := r.db.Model(&domain.User{}).
		Select("COUNT(*) AS total_users, COALESCE(SUM(coin), 0) AS total_coins, COALESCE(SUM(total_damage), 0) AS total_damage").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
