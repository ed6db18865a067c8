package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SiteContentRepository defines the interface for editable site pages
type SiteContentRepository interface {
	GetPage(ctx context.Context, page string) (*models.SiteContent, error)
	UpsertPage(ctx context.Context, content *models.SiteContent) error
}

// MongoSiteContentRepository implements SiteContentRepository for MongoDB
type MongoSiteContentRepository struct {
	collection *mongo.Collection
}

// NewMongoSiteContentRepository creates a new MongoSiteContentRepository
func NewMongoSiteContentRepository(db *mongo.Database) *MongoSiteContentRepository {
	return &MongoSiteContentRepository{collection: db.Collection("site_content")}
}

// GetPage retrieves a site page document by its slug
func (r *MongoSiteContentRepository) GetPage(ctx context.Context, page string) (*models.SiteContent, error) {
	var content models.SiteContent
	err := r.collection.FindOne(ctx, bson.M{"page": page}).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("page not found")
		}
		return nil, err
	}
	return &content, nil
}

// UpsertPage creates or replaces the content of a site page
func (r *MongoSiteContentRepository) UpsertPage(ctx context.Context, content *models.SiteContent) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":    content.Content,
			"updated_by": content.UpdatedBy,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"page":       content.Page,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"page": content.Page}, update, opts)
	return err
}
