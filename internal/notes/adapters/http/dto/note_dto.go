package dto

import (
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

// SectionRequest - тело создания и переименования раздела.
type SectionRequest struct {
	Name string `json:"name" validate:"required,notblank,sectionname"`
}

// SectionResponse - раздел.
type SectionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateNoteRequest - тело создания заметки.
type CreateNoteRequest struct {
	Subject   string `json:"subject" validate:"required,notblank"`
	Body      string `json:"body" validate:"required,notblank"`
	SectionID *int64 `json:"sectionId" validate:"required"`
}

// EditNoteRequest - тело изменения заметки. Нужно хотя бы одно поле.
type EditNoteRequest struct {
	Body      *string `json:"body" validate:"omitempty,notblank"`
	SectionID *int64  `json:"sectionId"`
}

// AnySet сообщает, задано ли хотя бы одно поле.
func (r *EditNoteRequest) AnySet() bool {
	return r.Body != nil || r.SectionID != nil
}

// RateRequest - тело оценки.
type RateRequest struct {
	Rating *int `json:"rating" validate:"required,min=1,max=5"`
}

// CreateCommentRequest - тело создания комментария.
type CreateCommentRequest struct {
	NoteID *int64 `json:"noteId" validate:"required"`
	Body   string `json:"body" validate:"required,notblank"`
}

// EditCommentRequest - тело изменения комментария.
type EditCommentRequest struct {
	Body string `json:"body" validate:"required,notblank"`
}

// NoteResponse - заметка с текущим телом. RevisionID - порядковый номер ревизии.
type NoteResponse struct {
	ID         int64  `json:"id"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	SectionID  int64  `json:"sectionId"`
	AuthorID   int64  `json:"authorId"`
	Created    string `json:"created"`
	RevisionID int    `json:"revisionId"`
}

// CommentResponse - комментарий. RevisionID - порядковый номер ревизии.
type CommentResponse struct {
	ID         int64  `json:"id"`
	Body       string `json:"body"`
	NoteID     int64  `json:"noteId,omitempty"`
	AuthorID   int64  `json:"authorId"`
	RevisionID *int   `json:"revisionId,omitempty"`
	Created    string `json:"created"`
}

// NoteItem - заметка в списке.
type NoteItem struct {
	ID        int64          `json:"id"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	SectionID int64          `json:"sectionId"`
	AuthorID  int64          `json:"authorId"`
	Created   string         `json:"created"`
	Revisions []RevisionItem `json:"revisions,omitempty"`
}

// RevisionItem - ревизия в списке. Поля заполняются по флагам запроса.
// Comments равен nil, только если комментарии не запрошены.
type RevisionItem struct {
	ID       *int               `json:"id,omitempty"`
	Body     *string            `json:"body,omitempty"`
	Created  *string            `json:"created,omitempty"`
	Comments *[]CommentResponse `json:"comments,omitempty"`
}

// NewSection строит ответ раздела.
func NewSection(s *entities.Section) SectionResponse {
	return SectionResponse{ID: s.ID, Name: s.Name}
}

// NewSections строит список разделов.
func NewSections(sections []entities.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, NewSection(&sections[i]))
	}
	return out
}

// NewNote строит ответ заметки.
func NewNote(n *entities.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		Subject:    n.Subject,
		Body:       n.Current.Body,
		SectionID:  n.SectionID,
		AuthorID:   n.AuthorID,
		Created:    FormatTime(n.CreatedAt),
		RevisionID: n.Current.Ordinal,
	}
}

// NewComment строит ответ комментария с заметкой и ревизией.
func NewComment(c *entities.Comment) CommentResponse {
	ordinal := c.RevisionOrdinal
	return CommentResponse{
		ID:         c.ID,
		Body:       c.Body,
		NoteID:     c.NoteID,
		AuthorID:   c.AuthorID,
		RevisionID: &ordinal,
		Created:    FormatTime(c.CreatedAt),
	}
}

// NewNoteComments строит список комментариев заметки. Каждый элемент несет noteId.
func NewNoteComments(comments []entities.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewComment(&comments[i]))
	}
	return out
}

// NewNoteItems строит список заметок в форме shape.
func NewNoteItems(notes []entities.NoteHistory, shape query.Shape) []NoteItem {
	out := make([]NoteItem, 0, len(notes))
	for i := range notes {
		n := &notes[i]
		item := NoteItem{
			ID:        n.ID,
			Subject:   n.Subject,
			Body:      n.Current.Body,
			SectionID: n.SectionID,
			AuthorID:  n.AuthorID,
			Created:   FormatTime(n.CreatedAt),
		}
		if shape.NeedsHistory() {
			item.Revisions = newRevisionItems(n.Revisions, shape)
		}
		out = append(out, item)
	}
	return out
}

func newRevisionItems(revisions []entities.RevisionWithComments, shape query.Shape) []RevisionItem {
	out := make([]RevisionItem, 0, len(revisions))
	for i := range revisions {
		rev := &revisions[i]
		var item RevisionItem
		if shape.AllVersions {
			ordinal, body, created := rev.Ordinal, rev.Body, FormatTime(rev.CreatedAt)
			item.ID, item.Body, item.Created = &ordinal, &body, &created
		}
		if shape.Comments {
			comments := make([]CommentResponse, 0, len(rev.Comments))
			for j := range rev.Comments {
				c := NewComment(&rev.Comments[j])
				c.NoteID = 0
				if !shape.CommentVersion {
					c.RevisionID = nil
				}
				comments = append(comments, c)
			}
			item.Comments = &comments
		}
		out = append(out, item)
	}
	return out
}
