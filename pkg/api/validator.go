package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

const maxButtonLength = 64

func (p KeyPayload) Validate() error {
	if p.Button == "" {
		return errors.New("button is required")
	}
	if len(p.Button) > maxButtonLength {
		return errors.New("button name too long")
	}
	return nil
}
