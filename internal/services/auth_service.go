// auth_service.go
//
// Credential verification and token-based request authorization
//
// This file is part of kpa-formsdb.
// kpa-formsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// kpa-formsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with kpa-formsdb.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trudransh/kpa-formsdb/internal/models"
)

// AuthService combines the credential store, password hasher, and token
// service into the login/register/resolve flow.
type AuthService struct {
	DB         *gorm.DB
	Tokens     *TokenService
	BcryptCost int
}

// NewAuthService creates an AuthService over the given database handle.
func NewAuthService(db *gorm.DB, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{DB: db, Tokens: tokens, BcryptCost: bcryptCost}
}

// HashPassword produces a salted one-way hash of the plaintext.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (s *AuthService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Register creates a new active user. A duplicate phone number yields a
// ConflictError; existing users are never overwritten.
func (s *AuthService) Register(phoneNumber, password string) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("phone_number = ?", phoneNumber).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ConflictError{Resource: "Phone number", Key: phoneNumber}
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		PhoneNumber:    phoneNumber,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies the credentials and issues a bearer token bound to the
// phone number. Unknown phone number and wrong password collapse to the
// same ErrUnauthorized.
func (s *AuthService) Login(phoneNumber, password string) (string, error) {
	var user models.User
	err := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)}).
		Where("phone_number = ?", phoneNumber).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !s.VerifyPassword(password, user.HashedPassword) {
		return "", ErrUnauthorized
	}

	return s.Tokens.Issue(user.PhoneNumber)
}

// Resolve verifies a bearer token and loads the user it was issued to.
// Invalid or expired tokens, and tokens whose subject no longer exists,
// all yield ErrUnauthorized.
func (s *AuthService) Resolve(tokenStr string) (*models.User, error) {
	subject, err := s.Tokens.Verify(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var user models.User
	err = s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)}).
		Where("phone_number = ?", subject).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &user, nil
}
