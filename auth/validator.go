package auth

import (
	"unicode"

	"campus-board/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password  string `json:"password" validate:"required,min=12,max=72"`
	FullName  string `json:"full_name" validate:"required,max=128"`
	Faculty   string `json:"faculty" validate:"required,max=64"`
	StudyYear int    `json:"study_year" validate:"required,gte=1,lte=6"`
	Series    string `json:"series" validate:"max=16"`
	GroupName string `json:"group_name" validate:"required,max=32"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
