package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// validation wraps ErrValidation with a message meant for the client
func validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// translate maps gorm.ErrRecordNotFound to ErrNotFound
func translate(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return err
}
