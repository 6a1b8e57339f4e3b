// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

// NoteRepository определяет интерфейс для работы с заметками.
// Методы чтения возвращают заметку вместе с текущей ревизией.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)
	FindByID(ctx context.Context, noteID int64) (*entities.Note, error)
	// Lock блокирует строку заметки до конца транзакции. Вне транзакции бесполезен.
	Lock(ctx context.Context, noteID int64) error
	Transfer(ctx context.Context, noteID, sectionID int64) error
	Delete(ctx context.Context, noteID int64) error
	// Rate пересчитывает среднее одним атомарным UPDATE.
	Rate(ctx context.Context, noteID int64, value int) error
	List(ctx context.Context, q query.NoteQuery) ([]entities.Note, error)
}

// RevisionRepository хранит неизменяемые ревизии. Порядковые номера вычисляются при чтении.
type RevisionRepository interface {
	Append(ctx context.Context, noteID int64, body string, at time.Time) (*entities.Revision, error)
	// ListByNotes возвращает ревизии заметок, упорядоченные по заметке и номеру.
	ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Revision, error)
}

// CommentRepository определяет интерфейс для работы с комментариями.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) (int64, error)
	FindByID(ctx context.Context, commentID int64) (*entities.Comment, error)
	// Rebind меняет текст и привязывает комментарий к последней ревизии заметки.
	Rebind(ctx context.Context, commentID int64, body string) (*entities.Comment, error)
	Delete(ctx context.Context, commentID int64) error
	DeleteOnCurrentRevision(ctx context.Context, noteID int64) error
	ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Comment, error)
}

// SectionRepository определяет интерфейс для работы с разделами.
type SectionRepository interface {
	Create(ctx context.Context, section *entities.Section) (int64, error)
	FindByID(ctx context.Context, sectionID int64) (*entities.Section, error)
	Rename(ctx context.Context, sectionID int64, name string) error
	Delete(ctx context.Context, sectionID int64) error
	List(ctx context.Context) ([]entities.Section, error)
}

// MaintenanceRepository - служебные операции над хранилищем.
type MaintenanceRepository interface {
	Clear(ctx context.Context) error
}
