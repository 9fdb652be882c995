package shamir

import "errors"

var (
	// ErrInsufficientPoints is returned when fewer shares than the threshold are supplied.
	ErrInsufficientPoints = errors.New("insufficient points for threshold")
	// ErrDuplicateX is returned when two shares have the same x-coordinate.
	ErrDuplicateX = errors.New("duplicate x-coordinate")
	// ErrInexactDivision is returned when the interpolation does not divide evenly,
	// which only happens for inconsistent or malformed shares.
	ErrInexactDivision = errors.New("inexact division in lagrange interpolation")
	// ErrInvalidThreshold is returned for a threshold below one.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInvalidShare is returned for a nil share or a share with a nil coordinate.
	ErrInvalidShare = errors.New("invalid share")
)
