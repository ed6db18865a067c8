package repositories

import (
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	CreateReply(reply *models.Reply) error
	GetReplyByID(id uint) (*models.Reply, error)
	GetRepliesByPostID(postID uint) ([]models.Reply, error)
	GetRepliesByUserID(userID uint) ([]models.Reply, error)
	GetReplyCounts(postIDs []uint) (map[uint]int, error)
	DeleteReply(id uint) error
	IncrementLikes(replyID uint) error
	DecrementLikes(replyID uint) error
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

// CreateReply creates a new reply
func (r *PostgresReplyRepository) CreateReply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetReplyByID retrieves a reply by ID
func (r *PostgresReplyRepository) GetReplyByID(id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetRepliesByPostID retrieves every reply for a post in creation order.
// The thread builder depends on this ordering.
func (r *PostgresReplyRepository) GetRepliesByPostID(postID uint) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// GetRepliesByUserID retrieves replies authored by a user, newest first
func (r *PostgresReplyRepository) GetRepliesByUserID(userID uint) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// GetReplyCounts returns the number of replies per post for the given posts
func (r *PostgresReplyRepository) GetReplyCounts(postIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int)
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Total  int
	}
	err := r.db.Model(&models.Reply{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// DeleteReply deletes a reply by ID
func (r *PostgresReplyRepository) DeleteReply(id uint) error {
	return r.db.Delete(&models.Reply{}, id).Error
}

// IncrementLikes atomically increments the likes counter of a reply
func (r *PostgresReplyRepository) IncrementLikes(replyID uint) error {
	return r.db.Model(&models.Reply{}).Where("id = ?", replyID).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

// DecrementLikes atomically decrements the likes counter of a reply
func (r *PostgresReplyRepository) DecrementLikes(replyID uint) error {
	return r.db.Model(&models.Reply{}).Where("id = ? AND likes > 0", replyID).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
}
