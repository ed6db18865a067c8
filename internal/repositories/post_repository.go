package repositories

import (
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. The
// increment/decrement methods are the atomic counter operations; they touch
// only the denormalized likes column, never the post_likes membership table.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetPostsByIDs(ids []uint) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	IncrementLikes(postID uint) error
	DecrementLikes(postID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves posts authored by a specific user, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByIDs retrieves the posts with the given IDs in one query. The
// result order is unspecified; callers reorder as needed.
func (r *PostgresPostRepository) GetPostsByIDs(ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := r.db.Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post by ID. Replies, likes and saves referencing it
// are removed by the store's cascade rules.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// IncrementLikes atomically increments the likes counter of a post
func (r *PostgresPostRepository) IncrementLikes(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

// DecrementLikes atomically decrements the likes counter of a post
func (r *PostgresPostRepository) DecrementLikes(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND likes > 0", postID).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
}
