package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
)

// Username is 1-6 Chinese characters; password is 6-20 printable characters
var (
	usernamePattern = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}]{1,6}$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9\W_]{6,20}$`)
)

// ErrBadCredentials deliberately does not say which of username/password was wrong
var ErrBadCredentials = errors.New("用户名或密码错误")

// UserService handles registration and credential login
type UserService struct {
	db    *gorm.DB            // Shared persistent store
	authn *auth.Authenticator // Token issuer
}

// NewUserService creates a UserService over the given store and authenticator
func NewUserService(db *gorm.DB, authn *auth.Authenticator) *UserService {
	return &UserService{db: db, authn: authn}
}

// Register creates a user after validating the credential format and username
// uniqueness. The nickname defaults to the username.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: 用户名只能包含1-6个中文汉字", errs.ErrInvalidArgument)
	}
	if !passwordPattern.MatchString(password) {
		return nil, fmt.Errorf("%w: 密码必须为6-20位字母、数字或特殊字符", errs.ErrInvalidArgument)
	}

	// Uniqueness check before insert
	var existing domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: 用户名已存在", errs.ErrInvalidArgument)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, upstream(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, upstream(err)
	}
	user := domain.User{
		Username: username,
		Password: string(hash),
		Nickname: username, // Default nickname is the username
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, upstream(err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")
	return &user, nil
}

// Login verifies the credentials and issues a session token
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, upstream(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := s.authn.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return "", nil, upstream(err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User logged in")
	return token, &user, nil
}

// FindByUsername returns the user with the given username, or nil when absent
func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstream(err)
	}
	return &user, nil
}
