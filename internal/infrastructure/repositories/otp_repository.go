package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"gorm.io/gorm"
)

// DBUserOTP is one row of the OTP ledger. Rows are kept as history.
type DBUserOTP struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"index;not null"`
	User           DBUser    `gorm:"constraint:OnDelete:CASCADE"`
	OTP            int       `gorm:"column:otp"`
	ExpirationTime time.Time `gorm:"not null"`
	IsVerified     bool      `gorm:"not null"`
	CreatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUserOTP) TableName() string {
	return "user_otps"
}

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, record *domain.OTPRecord) error {
	row := &DBUserOTP{
		UserID:         record.UserID,
		OTP:            record.Code,
		ExpirationTime: record.ExpirationTime,
		IsVerified:     record.IsVerified,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		return err
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

// LatestForUser implements domain.OTPRepository. Ordering is by id so records
// created within the same clock tick keep insertion order.
func (r *OTPRepositoryImpl) LatestForUser(ctx context.Context, userID uint) (*domain.OTPRecord, error) {
	var row DBUserOTP
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPMissing
		}
		return nil, err
	}
	return &domain.OTPRecord{
		ID:             row.ID,
		UserID:         row.UserID,
		Code:           row.OTP,
		ExpirationTime: row.ExpirationTime,
		IsVerified:     row.IsVerified,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// MarkVerified implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBUserOTP{}).
		Where("id = ? AND is_verified = ?", id, false).
		Update("is_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyVerified
	}
	return nil
}

// Delete implements domain.OTPRepository
func (r *OTPRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBUserOTP{}, id).Error
}

// ConsumeThrough implements domain.OTPRepository. Only one caller can win the
// conditional delete of the matched record.
func (r *OTPRepositoryImpl) ConsumeThrough(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ? AND is_verified = ?", id, userID, false).Delete(&DBUserOTP{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOTPAlreadyConsumed
		}
		return tx.Where("user_id = ? AND id < ? AND is_verified = ?", userID, id, false).
			Delete(&DBUserOTP{}).Error
	})
}
