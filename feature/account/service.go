package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"booktracker/core/errs"
	"booktracker/core/models"
	"booktracker/core/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserView is the serialized form of a user.
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	HashID   string `json:"hash_id"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is a user with a token to authenticate further requests.
type Session struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// Service handles account operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validation.Validator
}

// NewService creates a new account service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, validate: validation.New()}
}

func newUserView(u models.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, HashID: u.HashID}
}

// Login verifies the credentials and returns the user's token, issuing one if needed.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if err := s.validate.Check(req, "Invalid login parameters"); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where(&models.User{Username: req.Username}).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Unauthorized("Unable to log in with provided credentials.")
	}
	if err != nil {
		return nil, errs.Internal("failed to load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errs.Unauthorized("Unable to log in with provided credentials.")
	}

	var token models.Token
	err = s.db.WithContext(ctx).Where(&models.Token{UserID: user.ID}).Order("created_at").First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		token, err = issueToken(s.db.WithContext(ctx), user.ID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load token", err)
	}

	s.logger.Info("User logged in", zap.Uint("owner_id", user.ID))
	return &Session{User: newUserView(user), Token: token.Key}, nil
}

// CreateUser registers a user and issues its first token.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, errs.Validation("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashID, err := randomHex(16)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: string(hash), HashID: hashID}
	var token models.Token
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where(&models.User{Username: username}).Count(&count).Error; err != nil {
			return errs.Internal("failed to check username", err)
		}
		if count > 0 {
			return errs.Validation("A user with username %s already exists", username)
		}
		if err := tx.Create(&user).Error; err != nil {
			return errs.Internal("failed to create user", err)
		}
		token, err = issueToken(tx, user.ID)
		if err != nil {
			return errs.Internal("failed to create token", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.Uint("owner_id", user.ID), zap.String("username", username))
	return &Session{User: newUserView(user), Token: token.Key}, nil
}

// DeleteUser removes a user and everything it owns.
func (s *Service) DeleteUser(ctx context.Context, username string) (*UserView, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.User{Username: username}).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Could not find user %s", username)
		}
		if err != nil {
			return errs.Internal("failed to load user", err)
		}

		owned := []any{
			&models.Token{},
			&models.StatusEvent{},
			&models.Tag{},
			&models.Author{},
			&models.Book{},
			&models.Series{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", user.ID).Delete(m).Error; err != nil {
				return errs.Internal("failed to delete user data", err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return errs.Internal("failed to delete user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User deleted", zap.Uint("owner_id", user.ID), zap.String("username", username))
	v := newUserView(user)
	return &v, nil
}

func issueToken(db *gorm.DB, userID uint) (models.Token, error) {
	key, err := randomHex(20)
	if err != nil {
		return models.Token{}, err
	}
	token := models.Token{Key: key, UserID: userID}
	if err := db.Create(&token).Error; err != nil {
		return models.Token{}, err
	}
	return token, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
