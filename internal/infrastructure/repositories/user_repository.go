package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags).
// Identity columns are nullable so accounts without a phone or username do not collide.
type DBUser struct {
	ID              uint    `gorm:"primaryKey"`
	Username        *string `gorm:"uniqueIndex;size:150"`
	Email           *string `gorm:"uniqueIndex;size:254"`
	Phone           *string `gorm:"uniqueIndex;size:32"`
	PasswordHash    string  `gorm:"column:password;size:128"`
	FirstName       string  `gorm:"size:30"`
	LastName        string  `gorm:"size:150"`
	Role            string  `gorm:"index;size:20"`
	IsActive        bool    `gorm:"index"`
	IsStaff         bool
	IsEmailVerified bool
	DateJoined      time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if dbUser.DateJoined.IsZero() {
		dbUser.DateJoined = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.DateJoined = dbUser.DateJoined
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail implements domain.UserRepository; matching is case-insensitive
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

// FindByUsername implements domain.UserRepository; matching is case-insensitive
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "LOWER(username) = ?", strings.ToLower(username))
}

// FindByLogin implements domain.UserRepository
func (r *UserRepositoryImpl) FindByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	if identifier == "" {
		return nil, domain.ErrUserNotFound
	}
	needle := strings.ToLower(identifier)
	var rows []DBUser
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", needle, needle).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, domain.ErrUserNotFound
	}
	return r.dbToDomain(&rows[0]), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	err := r.db.WithContext(ctx).Save(dbUser).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUserAlreadyExists
	}
	if err == nil {
		user.UpdatedAt = dbUser.UpdatedAt
	}
	return err
}

// SetEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) SetEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("is_email_verified", true).Error
}

func (r *UserRepositoryImpl) first(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		Username:        nullable(user.Username),
		Email:           nullable(strings.ToLower(user.Email)),
		Phone:           nullable(user.Phone),
		PasswordHash:    user.PasswordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            string(user.Role),
		IsActive:        user.IsActive,
		IsStaff:         user.IsStaff,
		IsEmailVerified: user.IsEmailVerified,
		DateJoined:      user.DateJoined,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		Username:        deref(dbUser.Username),
		Email:           deref(dbUser.Email),
		Phone:           deref(dbUser.Phone),
		PasswordHash:    dbUser.PasswordHash,
		FirstName:       dbUser.FirstName,
		LastName:        dbUser.LastName,
		Role:            domain.Role(dbUser.Role),
		IsActive:        dbUser.IsActive,
		IsStaff:         dbUser.IsStaff,
		IsEmailVerified: dbUser.IsEmailVerified,
		DateJoined:      dbUser.DateJoined,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
