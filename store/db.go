package store

import (
	"github.com/neuroverse/neuroverse-cli/internal/models"
)

// DB is the local storage interface.
type DB interface {
	// SaveTokens stores an access/refresh token pair. Both values are
	// written in a single transaction.
	SaveTokens(pair models.TokenPair) error
	// Tokens returns the stored token pair. A zero pair is returned when
	// no tokens are stored.
	Tokens() (models.TokenPair, error)
	// ClearTokens removes both tokens in a single transaction.
	ClearTokens() error
	// SaveAssessment stores an assessment record. The record is created if
	// it doesn't exist already, or overwritten if it does.
	SaveAssessment(rec *models.AssessmentRecord) error
	// GetAssessment retrieves an assessment record by its id
	GetAssessment(id string) (*models.AssessmentRecord, error)
	// ListAssessments returns all saved assessment records in the order
	// they were created
	ListAssessments() ([]*models.AssessmentRecord, error)
	// DeleteAssessments deletes one or more saved assessment records
	DeleteAssessments(ids []string) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
