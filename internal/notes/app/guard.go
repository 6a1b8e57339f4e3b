package app

import (
	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
)

// RequireOwner пропускает только владельца ресурса. denied возвращается при отказе.
func RequireOwner(actor *entities.User, ownerID int64, denied *apperr.Error) error {
	if actor.ID != ownerID {
		return denied
	}
	return nil
}

// RequireOwnerOrAdmin пропускает владельца ресурса и администратора.
func RequireOwnerOrAdmin(actor *entities.User, ownerID int64, denied *apperr.Error) error {
	if actor.IsAdmin() {
		return nil
	}
	return RequireOwner(actor, ownerID, denied)
}

// RequireCommentOrNoteOwnerOrAdmin пропускает автора комментария, владельца заметки и администратора.
func RequireCommentOrNoteOwnerOrAdmin(actor *entities.User, comment *entities.Comment, note *entities.Note) error {
	if actor.ID == comment.AuthorID || note.OwnedBy(actor.ID) || actor.IsAdmin() {
		return nil
	}
	return apperr.ErrNotOwnerOfCommentOrNote
}

// RequireAdmin пропускает только администратора.
func RequireAdmin(actor *entities.User) error {
	if !actor.IsAdmin() {
		return apperr.ErrNotSuperuser
	}
	return nil
}
