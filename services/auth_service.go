// Package services exposes the application facade consumed by the gateway.
package services

import (
	"fmt"
	"time"

	"campus-board/auth"
	"campus-board/domain"
	"campus-board/errors"
	"campus-board/repositories"
)

type IAuthService interface {
	Register(req auth.RegisterRequest) (Token, domain.User, error)
	Login(username, password string) (Token, error)
	GetProfile(username string) (domain.User, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokenDuration  time.Duration
}

type Token string

func (t Token) String() string {
	return string(t)
}

func NewAuthService(repo repositories.IUserRepository, tokenDuration time.Duration) IAuthService {
	return &AuthService{userRepository: repo, tokenDuration: tokenDuration}
}

func (s *AuthService) Register(req auth.RegisterRequest) (Token, domain.User, error) {
	// 1. Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(req); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password here so the repository never sees plain passwords.
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist. The repository decides admin status (first member of the
	// group) and propagates ErrUserAlreadyExists on a taken username.
	user, err := s.userRepository.CreateUser(domain.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Faculty:      req.Faculty,
		StudyYear:    req.StudyYear,
		Series:       req.Series,
		GroupName:    req.GroupName,
	})
	if err != nil {
		return "", domain.User{}, err
	}

	// 4. Issue the initial session token.
	token, err := auth.GenerateToken(user.ID, user.Username, user.Roles, s.tokenDuration)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}

	return Token(token), user, nil
}

func (s *AuthService) Login(username, password string) (Token, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Roles, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}

// GetProfile returns the stored account, used by the gateway to resolve the
// caller's faculty and group when scoping room access.
func (s *AuthService) GetProfile(username string) (domain.User, error) {
	return s.userRepository.GetUserByUsername(username)
}
