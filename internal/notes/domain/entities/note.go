// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note - заметка. Тема неизменна после создания, раздел может меняться переносом.
type Note struct {
	ID          int64
	Subject     string
	AuthorID    int64
	SectionID   int64
	CreatedAt   time.Time
	Rating      float64
	RatingCount int
	// Current - последняя ревизия заметки.
	Current Revision
}

// NewNote создает заметку с первой ревизией.
func NewNote(authorID, sectionID int64, subject, body string, now time.Time) *Note {
	return &Note{
		Subject:   subject,
		AuthorID:  authorID,
		SectionID: sectionID,
		CreatedAt: now,
		Current:   Revision{Body: body, Ordinal: 1, CreatedAt: now},
	}
}

// OwnedBy сообщает, принадлежит ли заметка пользователю.
func (n *Note) OwnedBy(userID int64) bool {
	return n.AuthorID == userID
}

// Revision - неизменяемая версия тела заметки.
// Ordinal - порядковый номер внутри заметки, начиная с 1.
type Revision struct {
	ID        int64
	NoteID    int64
	Ordinal   int
	Body      string
	CreatedAt time.Time
}

// Comment привязан к ревизии, актуальной на момент создания или последнего редактирования.
type Comment struct {
	ID         int64
	NoteID     int64
	RevisionID int64
	// RevisionOrdinal - порядковый номер ревизии, к которой привязан комментарий.
	RevisionOrdinal int
	AuthorID        int64
	Body            string
	CreatedAt       time.Time
}

// RevisionWithComments - ревизия вместе с привязанными к ней комментариями.
type RevisionWithComments struct {
	Revision
	Comments []Comment
}

// NoteHistory - заметка с полной историей ревизий.
type NoteHistory struct {
	Note
	Revisions []RevisionWithComments
}
