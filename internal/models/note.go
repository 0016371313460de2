package models

import "time"

// Note is the stored form of a note.
type Note struct {
	NoteID      string     `bson:"_id" db:"note_id"`
	UserID      string     `bson:"userId" db:"user_id"`
	Title       string     `bson:"title" db:"title"`
	Content     string     `bson:"content" db:"content"`
	Status      string     `bson:"status" db:"status"`
	Tags        []string   `bson:"tags" db:"tags"`
	ArchivedAt  *time.Time `bson:"archivedAt,omitempty" db:"archived_at"`
	AuditFields `bson:",inline"`
}
