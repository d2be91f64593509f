package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"electronics-store/internal/auth"
	"electronics-store/internal/dto"
	"electronics-store/internal/model"
	"electronics-store/internal/repository"
)

var (
	// Names are Cyrillic letters, spaces and hyphens; logins are ASCII
	// letters, digits and hyphens.
	nameRe  = regexp.MustCompile(`^[А-Яа-яЁё\s-]+$`)
	loginRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

type LoginResult struct {
	Token      string
	SessionKey string
	User       *model.User
}

type AccountService interface {
	// Register validates every field, aggregating all problems into one
	// ValidationErrors map, then creates the account and its profile in a
	// single transaction.
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	// Authenticate verifies credentials and establishes a session. The
	// audit row write is best-effort: its failure must never block a login.
	Authenticate(ctx context.Context, login, password, ip, userAgent string) (*LoginResult, error)
	Logout(ctx context.Context, userID uint, sessionKey string) error
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.ProfileUpdateRequest) error
	ActiveSessions(ctx context.Context, userID uint) ([]*model.UserSession, error)
}

type accountServiceImpl struct {
	db            *gorm.DB
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	cartRepo      repository.CartRepository
	sessionSecret string
	sessionTTL    time.Duration
}

func NewAccountService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	cartRepo repository.CartRepository,
	sessionSecret string,
	sessionTTL time.Duration,
) AccountService {
	return &accountServiceImpl{
		db:            db,
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		cartRepo:      cartRepo,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

func (s *accountServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	errs := ValidationErrors{}

	if req.Name == "" || !nameRe.MatchString(req.Name) {
		errs["name"] = "first name: Cyrillic letters, space and hyphen"
	}
	if req.Surname == "" || !nameRe.MatchString(req.Surname) {
		errs["surname"] = "last name: Cyrillic letters, space and hyphen"
	}
	if req.Patronymic != "" && !nameRe.MatchString(req.Patronymic) {
		errs["patronymic"] = "patronymic: Cyrillic letters, space and hyphen"
	}

	if req.Login == "" || !loginRe.MatchString(req.Login) {
		errs["login"] = "login: Latin letters, digits and hyphen"
	} else {
		taken, err := s.userRepo.LoginTaken(ctx, req.Login)
		if err != nil {
			return nil, fmt.Errorf("check login: %w", err)
		}
		if taken {
			errs["login"] = "login is already taken"
		}
	}

	if req.Email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "invalid email"
	} else {
		taken, err := s.userRepo.EmailTaken(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			errs["email"] = "email is already in use"
		}
	}

	if len(req.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if req.PasswordRepeat != req.Password {
		errs["password_repeat"] = "passwords do not match"
	}
	if !req.Rules {
		errs["rules"] = "you must accept the rules"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Login:        req.Login,
		Email:        req.Email,
		FirstName:    req.Name,
		LastName:     req.Surname,
		PasswordHash: string(hash),
	}

	// Account and profile are created together; no account ever exists
	// without its profile.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("store user: %w", err)
		}

		profile := &model.UserProfile{UserID: user.ID}
		if req.Patronymic != "" {
			profile.Patronymic = &req.Patronymic
		}
		if err := s.userRepo.CreateProfile(ctx, tx, profile); err != nil {
			return fmt.Errorf("store profile: %w", err)
		}

		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *accountServiceImpl) Authenticate(ctx context.Context, login, password, ip, userAgent string) (*LoginResult, error) {
	errs := ValidationErrors{}
	if login == "" {
		errs["login"] = "login is required"
	}
	if password == "" {
		errs["password"] = "password is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a wrong password: the caller learns nothing
			// about which part was wrong.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	sessionKey := uuid.NewString()
	token, err := auth.GenerateToken(s.sessionSecret, auth.Session{
		UserID:     user.ID,
		SessionKey: sessionKey,
	}, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, &model.UserSession{
		UserID:     user.ID,
		SessionKey: sessionKey,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}); err != nil {
		log.Println("session audit write failed:", err)
	}

	return &LoginResult{Token: token, SessionKey: sessionKey, User: user}, nil
}

func (s *accountServiceImpl) Logout(ctx context.Context, userID uint, sessionKey string) error {
	if err := s.sessionRepo.Deactivate(ctx, userID, sessionKey); err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}

	// The cart lives and dies with the session.
	if err := s.cartRepo.DeleteBySessionKey(ctx, sessionKey); err != nil {
		return fmt.Errorf("drop session cart: %w", err)
	}

	return nil
}

func (s *accountServiceImpl) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *accountServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.ProfileUpdateRequest) error {
	errs := ValidationErrors{}
	if req.FirstName == "" {
		errs["first_name"] = "first name is required"
	}
	if req.LastName == "" {
		errs["last_name"] = "last name is required"
	}
	if len(errs) > 0 {
		return errs
	}

	optional := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateNames(ctx, tx, userID, req.FirstName, req.LastName); err != nil {
			return fmt.Errorf("update names: %w", err)
		}

		err := s.userRepo.UpdateProfile(ctx, tx, userID,
			optional(req.Patronymic), optional(req.Phone), optional(req.Address))
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		return nil
	})
}

func (s *accountServiceImpl) ActiveSessions(ctx context.Context, userID uint) ([]*model.UserSession, error) {
	return s.sessionRepo.ListActive(ctx, userID, 5)
}
