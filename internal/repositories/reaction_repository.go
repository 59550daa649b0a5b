package repositories

import (
	"github.com/coucou-social/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	DeleteReaction(postID, userID string) (*models.Reaction, error)
	GetReactionsByPostID(postID string) ([]models.Reaction, error)
	GetReactionsCountByPostID(postID string) (int64, error)
	HasUserReacted(postID, userID string) (bool, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction creates a new reaction in PostgreSQL
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	if err := r.db.Create(reaction).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// DeleteReaction removes a user's reaction to a post and returns it
func (r *PostgresReactionRepository) DeleteReaction(postID, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("reaction not found")
		}
		return nil, models.NewStoreError(err)
	}
	if err := r.db.Delete(&reaction).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return &reaction, nil
}

// GetReactionsByPostID retrieves all reactions for a post
func (r *PostgresReactionRepository) GetReactionsByPostID(postID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("post_id = ?", postID).Find(&reactions).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return reactions, nil
}

// GetReactionsCountByPostID counts the reactions for a post
func (r *PostgresReactionRepository) GetReactionsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}

// HasUserReacted reports whether the user has already reacted to the post
func (r *PostgresReactionRepository) HasUserReacted(postID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	if err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}
