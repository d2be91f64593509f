package repository

import (
	"context"

	"gorm.io/gorm"

	"electronics-store/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.UserSession) error
	// Deactivate marks the audit row inactive. The row itself is never
	// deleted; sessions are an append-only history.
	Deactivate(ctx context.Context, userID uint, sessionKey string) error
	ListActive(ctx context.Context, userID uint, limit int) ([]*model.UserSession, error)
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepoImpl{
		db: db,
	}
}

func (r *sessionRepoImpl) Create(ctx context.Context, session *model.UserSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepoImpl) Deactivate(ctx context.Context, userID uint, sessionKey string) error {
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("user_id = ? AND session_key = ?", userID, sessionKey).
		Update("is_active", false).Error
}

func (r *sessionRepoImpl) ListActive(ctx context.Context, userID uint, limit int) ([]*model.UserSession, error) {
	var sessions []*model.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity DESC").
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, err
	}

	return sessions, nil
}
