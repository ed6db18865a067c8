package repositories

import (
	"fmt"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRepository defines the interface for the admins membership table.
// Promote/Demote stand in for the role mutation procedures of the store.
type AdminRepository interface {
	IsAdmin(userID uint) (bool, error)
	GetAdminUserIDs() ([]uint, error)
	Promote(userID uint) error
	Demote(userID uint) error
}

// PostgresAdminRepository implements AdminRepository
type PostgresAdminRepository struct {
	db *gorm.DB
}

func NewPostgresAdminRepository(db *gorm.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

// IsAdmin checks membership of the admins table
func (r *PostgresAdminRepository) IsAdmin(userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAdminUserIDs returns the user ids of all admins
func (r *PostgresAdminRepository) GetAdminUserIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Admin{}).Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Promote grants the admin role
func (r *PostgresAdminRepository) Promote(userID uint) error {
	return r.db.Create(&models.Admin{UserID: userID}).Error
}

// Demote revokes the admin role
func (r *PostgresAdminRepository) Demote(userID uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("admin not found")
	}
	return nil
}
