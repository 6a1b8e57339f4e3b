package app

import (
	"context"
	"fmt"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
)

// Границы оценки.
const (
	MinRating = 1
	MaxRating = 5
)

// RatingAggregator ведет среднюю оценку заметки.
type RatingAggregator struct {
	notes repositories.NoteRepository
}

// NewRatingAggregator создает агрегатор оценок.
func NewRatingAggregator(notes repositories.NoteRepository) *RatingAggregator {
	return &RatingAggregator{notes: notes}
}

// Rate добавляет оценку value к заметке. Пересчет среднего выполняет хранилище одним UPDATE.
func (a *RatingAggregator) Rate(ctx context.Context, actor *entities.User, noteID int64, value int) error {
	if value < MinRating || value > MaxRating {
		return apperr.InvalidField("rating", fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}

	note, err := a.notes.FindByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingNote, err)
	}

	if note.OwnedBy(actor.ID) {
		return apperr.ErrSelfRating
	}

	if err := a.notes.Rate(ctx, noteID, value); err != nil {
		return fmt.Errorf("rating note: %w", err)
	}
	return nil
}
