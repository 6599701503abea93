package service

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrOfferNotFound  = errors.New("offer not found")
	ErrSlugGeneration = errors.New("failed to generate unique slug")
)
