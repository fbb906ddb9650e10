package user

import (
	"context"
	"foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowRepository interface {
		CreateFollow(ctx context.Context, userID, followingID uuid.UUID) error
		DeleteFollow(ctx context.Context, userID, followingID uuid.UUID) (bool, error)
		IsFollowing(ctx context.Context, userID, followingID uuid.UUID) (bool, error)
		GetFollowingIDs(ctx context.Context, userID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetFollowing(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error)
	}

	followRepository struct {
		db *gorm.DB
	}
)

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(ctx context.Context, userID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Follow{
		ID:          uuid.New(),
		UserID:      userID,
		FollowingID: followingID,
	}).Error
}

func (r *followRepository) DeleteFollow(ctx context.Context, userID, followingID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&entities.Follow{})
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	following := make(map[uuid.UUID]bool, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return following, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND following_id IN ?", userID, candidateIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		following[id] = true
	}
	return following, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}
