package repository

import (
	"context"

	"gorm.io/gorm"

	"electronics-store/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	CreateProfile(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error
	FindByID(ctx context.Context, userID uint) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	LoginTaken(ctx context.Context, login string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdateNames(ctx context.Context, tx *gorm.DB, userID uint, firstName, lastName string) error
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uint, patronymic, phone, address *string) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) CreateProfile(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error {
	return tx.WithContext(ctx).Create(profile).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, userID).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("login = ?", login).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) LoginTaken(ctx context.Context, login string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("login = ?", login).
		Count(&count).Error

	return count > 0, err
}

func (r *userRepoImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error

	return count > 0, err
}

func (r *userRepoImpl) UpdateNames(ctx context.Context, tx *gorm.DB, userID uint, firstName, lastName string) error {
	return tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
		}).Error
}

func (r *userRepoImpl) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uint, patronymic, phone, address *string) error {
	return tx.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"patronymic": patronymic,
			"phone":      phone,
			"address":    address,
		}).Error
}
