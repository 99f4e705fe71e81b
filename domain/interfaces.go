package domain

import (
	"context"
	"time"
)

// UserRepository defines credential store operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByLogin matches identifier case-insensitively against username OR email.
	// Zero or several matches both yield ErrUserNotFound.
	FindByLogin(ctx context.Context, identifier string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetEmailVerified(ctx context.Context, userID uint) error
}

// OTPRepository defines OTP ledger persistence
type OTPRepository interface {
	Create(ctx context.Context, record *OTPRecord) error
	// LatestForUser returns the most recently created record or ErrOTPMissing
	LatestForUser(ctx context.Context, userID uint) (*OTPRecord, error)
	// MarkVerified flips an unverified record; ErrAlreadyVerified if it was already flipped or is gone
	MarkVerified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	// ConsumeThrough deletes unverified record id, then every older unverified record of the user.
	// ErrOTPAlreadyConsumed if record id was no longer unverified.
	ConsumeThrough(ctx context.Context, userID, id uint) error
}

// ResetTicketRepository defines password-reset ticket persistence
type ResetTicketRepository interface {
	Create(ctx context.Context, ticket *PasswordResetTicket) error
	FindByID(ctx context.Context, id string) (*PasswordResetTicket, error)
	// Delete removes a ticket; ErrResetTicketNotFound if it was already gone
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines product persistence
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
}

// RevocationStore is the set of blacklisted refresh-token identifiers
type RevocationStore interface {
	// Revoke adds jti to the set; entries may be dropped once ttl elapses
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService encodes and decodes signed tokens
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(user *User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService delivers messages; callers treat failures as best-effort
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// PolicyService answers role/resource/action questions
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// OTPService is the OTP ledger
type OTPService interface {
	Issue(ctx context.Context, user *User) (*OTPRecord, error)
	LatestFor(ctx context.Context, user *User) (*OTPRecord, error)
	MarkVerified(ctx context.Context, record *OTPRecord) error
	// Consume removes a record used for login so it can never be presented again
	Consume(ctx context.Context, record *OTPRecord) error
	Resend(ctx context.Context, email string) (*OTPRecord, error)
	VerifyEmail(ctx context.Context, email string, code int) (*User, error)
	SendLoginOTP(ctx context.Context, phone string) (*OTPRecord, error)
}

// SessionService is the token issuer/revoker
type SessionService interface {
	IssuePair(user *User) (*TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	VerifyAccess(token string) (*TokenClaims, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AuthService is the authentication engine
type AuthService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	AuthenticatePassword(ctx context.Context, identifier, password string) (*User, error)
	AuthenticateOTP(ctx context.Context, phoneOrEmail string, code int) (*User, error)
	Login(ctx context.Context, creds LoginCredentials) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (*PasswordResetTicket, error)
	ConfirmPasswordReset(ctx context.Context, ticketID, newPassword string) error
}

// AccountService is self-service profile management
type AccountService interface {
	Get(ctx context.Context, caller *Caller, id uint) (*User, error)
	Update(ctx context.Context, caller *Caller, id uint, upd ProfileUpdate) (*User, error)
	Deactivate(ctx context.Context, caller *Caller, id uint) error
}

// ProductService is CRUD over products guarded by the authorization engine
type ProductService interface {
	List(ctx context.Context, caller *Caller) ([]*Product, error)
	Get(ctx context.Context, caller *Caller, id uint) (*Product, error)
	Create(ctx context.Context, caller *Caller, in ProductInput) (*Product, error)
	Replace(ctx context.Context, caller *Caller, id uint, in ProductInput) (*Product, error)
	PartialUpdate(ctx context.Context, caller *Caller, id uint, in ProductInput) (*Product, error)
	Delete(ctx context.Context, caller *Caller, id uint) error
}

// TokenClaims represents decoded JWT claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	JTI       string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

// Authorizer decides whether a caller may perform an action. A nil caller is anonymous.
type Authorizer interface {
	AuthorizeProduct(caller *Caller, action Action, product *Product) error
	AuthorizeAccount(caller *Caller, action Action, targetID uint) error
}
