package models

import "time"

// AuditFields holds the audit columns shared by stored records.
type AuditFields struct {
	CreatedAt     time.Time `bson:"createdAt" db:"created_at"`
	CreatedBy     string    `bson:"createdBy" db:"created_by"`
	LastUpdatedAt time.Time `bson:"updatedAt" db:"last_updated_at"`
	LastUpdatedBy string    `bson:"updatedBy" db:"last_updated_by"`
}
