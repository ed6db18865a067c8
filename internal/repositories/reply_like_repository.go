package repositories

import (
	"fmt"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyLikeRepository defines the interface for reply like membership
type ReplyLikeRepository interface {
	CreateLike(like *models.ReplyLike) error
	DeleteLike(replyID, userID uint) error
	GetLikedReplyIDs(userID uint) ([]uint, error)
}

// PostgresReplyLikeRepository implements ReplyLikeRepository for PostgreSQL
type PostgresReplyLikeRepository struct {
	db *gorm.DB
}

// NewPostgresReplyLikeRepository creates a new PostgresReplyLikeRepository
func NewPostgresReplyLikeRepository(db *gorm.DB) *PostgresReplyLikeRepository {
	return &PostgresReplyLikeRepository{db: db}
}

// CreateLike inserts a (reply, user) membership row
func (r *PostgresReplyLikeRepository) CreateLike(like *models.ReplyLike) error {
	return r.db.Create(like).Error
}

// DeleteLike removes the (reply, user) membership row
func (r *PostgresReplyLikeRepository) DeleteLike(replyID, userID uint) error {
	res := r.db.Where("reply_id = ? AND user_id = ?", replyID, userID).Delete(&models.ReplyLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// GetLikedReplyIDs returns the ids of all replies the user has liked
func (r *PostgresReplyLikeRepository) GetLikedReplyIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ReplyLike{}).Where("user_id = ?", userID).Pluck("reply_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
