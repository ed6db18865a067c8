package repositories

import (
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserProfileRepository defines the interface for user profile operations
type UserProfileRepository interface {
	UpsertProfile(profile *models.UserProfile) error
	TouchLastSignIn(userID uint) error
	GetByUserID(userID uint) (*models.UserProfile, error)
	GetByUserIDs(userIDs []uint) (map[uint]models.UserProfile, error)
	GetAllProfiles() ([]models.UserProfile, error)
	DeleteByUserID(userID uint) error
}

// PostgresUserProfileRepository implements UserProfileRepository
type PostgresUserProfileRepository struct {
	db *gorm.DB
}

func NewPostgresUserProfileRepository(db *gorm.DB) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{db: db}
}

// UpsertProfile inserts the profile or updates it on user_id conflict
func (r *PostgresUserProfileRepository) UpsertProfile(profile *models.UserProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "class", "bio", "last_sign_in", "updated_at"}),
	}).Create(profile).Error
}

// TouchLastSignIn stamps the sign-in time without disturbing the fields
// the settings page owns
func (r *PostgresUserProfileRepository) TouchLastSignIn(userID uint) error {
	return r.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).
		UpdateColumn("last_sign_in", gorm.Expr("NOW()")).Error
}

// GetByUserID retrieves the profile for a single user
func (r *PostgresUserProfileRepository) GetByUserID(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserIDs retrieves profiles for many users in one query, keyed by
// user id. Callers batch their lookups through this instead of one call
// per row.
func (r *PostgresUserProfileRepository) GetByUserIDs(userIDs []uint) (map[uint]models.UserProfile, error) {
	result := make(map[uint]models.UserProfile)
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []models.UserProfile
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

// GetAllProfiles retrieves every profile, newest first (admin panel)
func (r *PostgresUserProfileRepository) GetAllProfiles() ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := r.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteByUserID removes the profile row for a user
func (r *PostgresUserProfileRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error
}
