package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	// MaxLoginAttempts failures in a row lock the account for LockDuration.
	MaxLoginAttempts = 5
	LockDuration     = 15 * time.Minute
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// User is an account that can authenticate and act on the system. Credential
// state (password hash, failed attempts, lock window) lives here; every other
// entity references users only by id through audit fields.
type User struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	shared.AuditStamp
	UserName            string     `json:"userName" gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName           string     `json:"firstName" gorm:"type:varchar(50);not null"`
	LastName            string     `json:"lastName" gorm:"type:varchar(50);not null"`
	Email               string     `json:"email" gorm:"type:varchar(254);not null"`
	PhoneNumber         *string    `json:"phoneNumber" gorm:"type:varchar(20)"`
	IsActive            bool       `json:"isActive" gorm:"not null;default:true"`
	PasswordHash        string     `json:"-" gorm:"type:varchar(100);not null"`
	FailedLoginAttempts int        `json:"-" gorm:"not null;default:0"`
	LockedUntil         *time.Time `json:"-"`
	Roles               []Role     `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a freshly hashed password
func NewUser(userName, firstName, lastName, email string, phoneNumber *string, password string) (*User, error) {
	user := &User{
		ID:        uuid.NewString(),
		UserName:  strings.TrimSpace(userName),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		IsActive:  true,
	}
	if phoneNumber != nil && strings.TrimSpace(*phoneNumber) != "" {
		trimmed := strings.TrimSpace(*phoneNumber)
		user.PhoneNumber = &trimmed
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the user's field-level rules (password excluded)
func (u *User) Validate() *shared.DomainError {
	if !usernameRegex.MatchString(u.UserName) {
		return shared.NewValidationError("Username must be 3-50 characters of letters, digits, underscore, dot or hyphen")
	}
	if u.FirstName == "" {
		return shared.NewValidationError("First name is required")
	}
	if u.LastName == "" {
		return shared.NewValidationError("Last name is required")
	}
	if !emailRegex.MatchString(u.Email) {
		return shared.NewValidationError("Email address is invalid")
	}
	if u.PhoneNumber != nil && !phoneRegex.MatchString(*u.PhoneNumber) {
		return shared.NewValidationError("Phone number is invalid")
	}
	return nil
}

// SetPassword validates the password policy and stores a bcrypt hash
func (u *User) SetPassword(password string) *shared.DomainError {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.ErrInternal
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsLocked reports whether the account is inside a lock window
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// CanLogin gates authentication on account state. It returns a distinct error
// for deactivated and locked accounts so callers never conflate them with bad
// credentials.
func (u *User) CanLogin(now time.Time) *shared.DomainError {
	if !u.IsActive {
		return shared.NewDomainError(shared.CodeAccountDeactivated, "Account is deactivated")
	}
	if u.IsLocked(now) {
		return shared.NewDomainError(shared.CodeAccountLocked, "Account is locked, try again later")
	}
	return nil
}

// RecordLoginFailure increments the failure counter and starts a lock window
// once MaxLoginAttempts is reached.
func (u *User) RecordLoginFailure(now time.Time) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxLoginAttempts {
		until := now.Add(LockDuration)
		u.LockedUntil = &until
	}
}

// RecordLoginSuccess clears the failure counter and any expired lock
func (u *User) RecordLoginSuccess() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

// Lock locks the account until the given time
func (u *User) Lock(until time.Time) {
	t := until
	u.LockedUntil = &t
}

// Unlock clears the lock window and failure counter
func (u *User) Unlock() {
	u.LockedUntil = nil
	u.FailedLoginAttempts = 0
}

// Activate marks the account active
func (u *User) Activate() {
	u.IsActive = true
}

// Deactivate marks the account inactive
func (u *User) Deactivate() {
	u.IsActive = false
}

// RoleNames returns the names of the user's loaded roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for i := range u.Roles {
		names = append(names, u.Roles[i].Name)
	}
	return names
}

func validatePassword(password string) *shared.DomainError {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return shared.NewValidationError("Password must contain at least one letter and one digit")
	}
	return nil
}
