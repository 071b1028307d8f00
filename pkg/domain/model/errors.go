package model

import "errors"

// Error kinds returned by the publish flow. Callers match them with errors.Is.
var (
	ErrInvalidRepository   = errors.New("repository must be in the form of 'owner/name'")
	ErrInvalidTarget       = errors.New("invalid publish target")
	ErrRunNotFound         = errors.New("run not found")
	ErrRunFailed           = errors.New("the last run failed")
	ErrNoArtifact          = errors.New("no artifact found")
	ErrInvalidArtifactName = errors.New("invalid artifact name")
)
