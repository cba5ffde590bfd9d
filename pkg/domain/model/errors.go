package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain model validation
var (
	ErrEmptyActionText = goerr.New("action item text is empty")
)
