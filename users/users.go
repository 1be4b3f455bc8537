package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// User is an account that can log in with email and password.
// Email is the login field; there is no separate username.
type User struct {
	ID           string    `json:"id,omitempty"`           // Unique identifier for the user
	Email        string    `json:"email,omitempty"`        // User's email address (unique)
	PasswordHash string    `json:"-"`                      // Hashed version of the user's password - never serialize
	FirstName    string    `json:"first_name,omitempty"`   // First name of the user
	LastName     string    `json:"last_name,omitempty"`    // Last name of the user
	PhoneNumber  string    `json:"phone_number,omitempty"` // Optional contact number
	Address      string    `json:"address,omitempty"`      // Optional postal address
	DateJoined   time.Time `json:"date_joined,omitempty"`  // Date and time when the user registered
	LastLogin    time.Time `json:"last_login,omitempty"`   // Last time the user logged in
}

// Profile is the public view of a user returned by the identity endpoint.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// Profile returns the serializable public view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
	}
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
