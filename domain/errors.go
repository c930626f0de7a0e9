package domain

import "errors"

var (
	ErrInvalidSigningAlg = errors.New("invalid signing algorithm")
	ErrExpiredToken      = errors.New("expired token")
	ErrCorruptedToken    = errors.New("corrupted token")
	ErrMissingSubject    = errors.New("token carries no user id")
)
