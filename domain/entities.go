package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the coarse-grained organisational role of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleNone     Role = ""
)

// Valid reports whether r is one of the assignable roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User represents an account in the credential store
type User struct {
	ID              uint
	Username        string
	Email           string
	Phone           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Role            Role
	IsActive        bool
	IsStaff         bool
	IsEmailVerified bool
	DateJoined      time.Time
	UpdatedAt       time.Time
}

// OTPRecord is one issued one-time passcode
type OTPRecord struct {
	ID             uint
	UserID         uint
	Code           int
	ExpirationTime time.Time
	IsVerified     bool
	CreatedAt      time.Time
}

// Expired reports whether the record is no longer valid at now
func (o *OTPRecord) Expired(now time.Time) bool {
	return now.After(o.ExpirationTime)
}

// PasswordResetTicket is a single-use reset identifier
type PasswordResetTicket struct {
	ID             string
	UserID         uint
	ExpirationTime time.Time
	CreatedAt      time.Time
}

// Expired reports whether the ticket is no longer valid at now
func (t *PasswordResetTicket) Expired(now time.Time) bool {
	return now.After(t.ExpirationTime)
}

// Product is the secondary resource guarded by ownership rules
type Product struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	OwnerID     uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TokenPair is the session artifact returned on login
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginCredentials is the union accepted by the login endpoint.
// Exactly one of {Email, Password} or {Phone, OTP} must be set.
type LoginCredentials struct {
	Email    string
	Password string
	Phone    string
	OTP      *int
}

// LoginResult is the outcome of a successful login
type LoginResult struct {
	User   *User
	Tokens TokenPair
}

// Registration carries the fields required to create an account
type Registration struct {
	Username  string
	Email     string
	Phone     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
}

// ProfileUpdate is a partial update of the caller's own account.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Password  *string
}

// ProductInput is the writable part of a product.
// Nil fields are left untouched on partial update.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

// Caller identifies who performs a request; nil means anonymous
type Caller struct {
	UserID  uint
	Role    Role
	IsStaff bool
}

// Action is an operation on a guarded resource
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
