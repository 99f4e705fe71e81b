package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBPasswordResetID stores one password-reset ticket
type DBPasswordResetID struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uint      `gorm:"index;not null"`
	User           DBUser    `gorm:"constraint:OnDelete:CASCADE"`
	ExpirationTime time.Time `gorm:"not null"`
	CreatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBPasswordResetID) TableName() string {
	return "password_reset_ids"
}

// ResetTicketRepositoryImpl implements domain.ResetTicketRepository using GORM
type ResetTicketRepositoryImpl struct {
	db *gorm.DB
}

// NewResetTicketRepository creates a new reset ticket repository
func NewResetTicketRepository(db *gorm.DB) domain.ResetTicketRepository {
	return &ResetTicketRepositoryImpl{db: db}
}

// Create implements domain.ResetTicketRepository; an empty ID is filled with a random UUID
func (r *ResetTicketRepositoryImpl) Create(ctx context.Context, ticket *domain.PasswordResetTicket) error {
	id := uuid.New()
	if ticket.ID != "" {
		parsed, err := uuid.Parse(ticket.ID)
		if err != nil {
			return err
		}
		id = parsed
	}
	row := &DBPasswordResetID{
		ID:             id,
		UserID:         ticket.UserID,
		ExpirationTime: ticket.ExpirationTime,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		return err
	}
	ticket.ID = row.ID.String()
	ticket.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.ResetTicketRepository
func (r *ResetTicketRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.PasswordResetTicket, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrResetTicketNotFound
	}
	var row DBPasswordResetID
	if err := r.db.WithContext(ctx).Where("id = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetTicketNotFound
		}
		return nil, err
	}
	return &domain.PasswordResetTicket{
		ID:             row.ID.String(),
		UserID:         row.UserID,
		ExpirationTime: row.ExpirationTime,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// Delete implements domain.ResetTicketRepository
func (r *ResetTicketRepositoryImpl) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrResetTicketNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", parsed).Delete(&DBPasswordResetID{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrResetTicketNotFound
	}
	return nil
}
