package domain

import "time"

type ImportTaskStatus string

const (
	ImportQueued     ImportTaskStatus = "queued"
	ImportProcessing ImportTaskStatus = "processing"
	ImportCompleted  ImportTaskStatus = "completed"
	ImportFailed     ImportTaskStatus = "failed"
)

// ImportTask tracks a menu import from a Google Sheet.
type ImportTask struct {
	ID            string           `bson:"_id,omitempty" json:"id"`
	Status        ImportTaskStatus `bson:"status" json:"status"`
	SpreadsheetID string           `bson:"spreadsheet_id" json:"spreadsheet_id"`
	ReadRange     string           `bson:"read_range,omitempty" json:"read_range,omitempty"`
	ItemCount     int              `bson:"item_count" json:"item_count"`
	ErrorMessage  string           `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RetryCount    int              `bson:"retry_count" json:"retry_count"`
	CreatedAt     time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at" json:"updated_at"`
}
