package storage

import "time"

// Classification represents a document classification in the database.
// A document belongs to exactly one classification.
type Classification struct {
	ID   int64
	Name string
}

// Document represents an ingested document in the database.
// Immutable after creation except for classification reassignment; deleting
// a document cascades to its chapter-title rows.
type Document struct {
	ID               int64
	ClassificationID int64
	Name             string // Display name, unique
	UploadTime       time.Time
}

// DocumentListing is a document joined with its classification name.
type DocumentListing struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
}
