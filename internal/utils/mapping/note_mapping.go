package mapping

import (
	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/models"
)

// ToModelNote converts a domain Note to a model Note
func ToModelNote(d domain.Note) models.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Note{
		NoteID:      d.NoteID,
		UserID:      d.UserID,
		Title:       d.Title,
		Content:     d.Content,
		Status:      string(d.Status),
		Tags:        tags,
		ArchivedAt:  d.ArchivedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNote converts a model Note to a domain Note
func ToDomainNote(m models.Note) domain.Note {
	return domain.Note{
		NoteID:      m.NoteID,
		UserID:      m.UserID,
		Title:       m.Title,
		Content:     m.Content,
		Status:      domain.NoteStatus(m.Status),
		Tags:        m.Tags,
		ArchivedAt:  m.ArchivedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainNoteSlice converts a slice of model Notes to a slice of domain Notes
func ToDomainNoteSlice(ms []models.Note) []domain.Note {
	ds := make([]domain.Note, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNote(m)
	}
	return ds
}
