package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrUpstreamFetch   = errors.New("upstream fetch failed")
	ErrInvalidListing  = errors.New("invalid listing")
	ErrInvalidPlayerID = errors.New("invalid player ID format")
)
