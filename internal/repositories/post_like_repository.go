package repositories

import (
	"fmt"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
)

// PostLikeRepository defines the interface for post like membership
type PostLikeRepository interface {
	CreateLike(like *models.PostLike) error
	DeleteLike(postID, userID uint) error
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikedPostIDs(userID uint) ([]uint, error)
	CountByPostID(postID uint) (int64, error)
}

// PostgresPostLikeRepository implements PostLikeRepository for PostgreSQL
type PostgresPostLikeRepository struct {
	db *gorm.DB
}

// NewPostgresPostLikeRepository creates a new PostgresPostLikeRepository
func NewPostgresPostLikeRepository(db *gorm.DB) *PostgresPostLikeRepository {
	return &PostgresPostLikeRepository{db: db}
}

// CreateLike inserts a (post, user) membership row
func (r *PostgresPostLikeRepository) CreateLike(like *models.PostLike) error {
	return r.db.Create(like).Error
}

// DeleteLike removes the (post, user) membership row
func (r *PostgresPostLikeRepository) DeleteLike(postID, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresPostLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikedPostIDs returns the ids of all posts the user has liked
func (r *PostgresPostLikeRepository) GetLikedPostIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.PostLike{}).Where("user_id = ?", userID).Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByPostID returns the membership cardinality for a post. Kept for
// recounting against the denormalized counter; reads normally trust the
// counter column.
func (r *PostgresPostLikeRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
