package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

// Chatbot output languages
const (
	LanguageMarathi = "Marathi"
	LanguageEnglish = "English"
)

var Languages = []string{LanguageMarathi, LanguageEnglish}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Language     string    `json:"language" bson:"language"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" bson:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name            string `json:"name"`
	Username        string `json:"username" validate:"required,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc ServiceInterface) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username, nu.Email)
}

// UpdateLanguage defines the payload to change a User's chatbot output language.
type UpdateLanguage struct {
	Language string `json:"language" validate:"required,oneof=Marathi English"`
}

func (ul *UpdateLanguage) Validate(validate *validator.Validate) error {
	ul.Language = core.CleanString(ul.Language)
	return validate.Struct(ul)
}

// GetFilter narrows down a single-User lookup.
type GetFilter struct {
	ID              string
	Username        string
	UsernameOrEmail string
}
