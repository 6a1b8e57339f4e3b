// Package apperr describes business errors returned to API clients as
// {errorCode, field, message} triples.
package apperr

import (
	"errors"
	"strings"
)

// Code - машиночитаемый код ошибки.
type Code string

// Коды бизнес-ошибок.
const (
	CodeLoginAlreadyBusy          Code = "LOGIN_ALREADY_BUSY"
	CodeWrongPassword             Code = "WRONG_PASSWORD"
	CodeSessionNotFound           Code = "THIS_SESSIONID_NOT_FOUND"
	CodeLoginAndPasswordNotFound  Code = "THIS_LOGIN_AND_PASSWORD_NOT_FOUND"
	CodeLoginNotFound             Code = "THIS_LOGIN_NOT_FOUND"
	CodeUserIDNotFound            Code = "THIS_ID_NOT_FOUND"
	CodeNotSuperuser              Code = "YOU_ARE_NOT_SUPERUSER"
	CodeSessionExpired            Code = "SESSION_TIME_IS_OVER"
	CodeWrongSearchParam          Code = "WRONG_SEARCH_PARAM"
	CodeInvalidParamValue         Code = "INVALID_PARAM_VALUE"
	CodeSectionNameAlreadyBusy    Code = "SECTION_NAME_ALREADY_BUSY"
	CodeSectionNotFound           Code = "THIS_SECTION_ID_NOT_FOUND"
	CodeNotOwnerOfSection         Code = "YOU_ARE_NOT_OWNER_OF_SECTION"
	CodeNoteNotFound              Code = "THIS_NOTE_ID_NOT_FOUND"
	CodeNotOwnerOfNote            Code = "YOU_ARE_NOT_OWNER_OF_NOTE"
	CodeCommentNotFound           Code = "THIS_COMMENT_ID_NOT_FOUND"
	CodeNotOwnerOfComment         Code = "YOU_ARE_NOT_OWNER_OF_COMMENT"
	CodeNotOwnerOfCommentOrNote   Code = "YOU_ARE_NOT_OWNER_OF_COMMENT_OR_NOTE"
	CodeSelfRating                Code = "YOU_CANT_RATE_YOUR_NOTE"
	CodeTooManyLoginAttempts      Code = "TOO_MANY_LOGIN_ATTEMPTS"
	CodeAllParametersCannotBeNull Code = "All_PARAMETERS_CANNOT_BE_NULL"
	invalidFieldPrefix                 = "INVALID_"
)

// Error - бизнес-ошибка, возвращаемая клиенту с HTTP 400.
type Error struct {
	Code    Code
	Field   string
	Message string
}

// New создает бизнес-ошибку.
func New(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// InvalidField создает ошибку валидации вида INVALID_<FIELD>.
func InvalidField(field, message string) *Error {
	return New(Code(invalidFieldPrefix+strings.ToUpper(field)), field, message)
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал для копий с другим полем.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// List - несколько ошибок, возвращаемых в одном ответе.
type List []*Error

func (l List) Error() string {
	parts := make([]string, 0, len(l))
	for _, e := range l {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap позволяет errors.Is находить отдельные ошибки списка.
func (l List) Unwrap() []error {
	errs := make([]error, 0, len(l))
	for _, e := range l {
		errs = append(errs, e)
	}
	return errs
}

// Collect извлекает список бизнес-ошибок из err. ok == false для прочих ошибок.
func Collect(err error) (List, bool) {
	var list List
	if errors.As(err, &list) {
		return list, true
	}
	var single *Error
	if errors.As(err, &single) {
		return List{single}, true
	}
	return nil, false
}

// Предопределенные бизнес-ошибки.
var (
	ErrLoginAlreadyBusy         = New(CodeLoginAlreadyBusy, "login", "This login is already busy")
	ErrWrongPassword            = New(CodeWrongPassword, "password", "Invalid password passed")
	ErrSessionNotFound          = New(CodeSessionNotFound, "sessionId", "The session id passed was not found")
	ErrLoginAndPasswordNotFound = New(CodeLoginAndPasswordNotFound, "login and password", "A User with this login and password was not found")
	ErrLoginNotFound            = New(CodeLoginNotFound, "login", "A User with this login was not found")
	ErrUserIDNotFound           = New(CodeUserIDNotFound, "userId", "A User with this id was not found")
	ErrNotSuperuser             = New(CodeNotSuperuser, "userType", "You must be a superuser to perform this operation")
	ErrSessionExpired           = New(CodeSessionExpired, "sessionId", "Too long inactivity, automatic logout occurred")
	ErrWrongSearchParam         = New(CodeWrongSearchParam, "searchParameter", "Invalid search parameter passed")
	ErrInvalidParamValue        = New(CodeInvalidParamValue, "valueOfSearchParameter", "Invalid parameter value passed")
	ErrSectionNameAlreadyBusy   = New(CodeSectionNameAlreadyBusy, "name", "This section name is already busy")
	ErrSectionNotFound          = New(CodeSectionNotFound, "sectionId", "This section id was not found")
	ErrNotOwnerOfSection        = New(CodeNotOwnerOfSection, "sectionId", "You are not the owner of the section")
	ErrNoteNotFound             = New(CodeNoteNotFound, "noteId", "This note id was not found")
	ErrNotOwnerOfNote           = New(CodeNotOwnerOfNote, "noteId", "You are not the owner of the note")
	ErrCommentNotFound          = New(CodeCommentNotFound, "commentId", "This comment id was not found")
	ErrNotOwnerOfComment        = New(CodeNotOwnerOfComment, "commentId", "You are not the owner of the comment")
	ErrNotOwnerOfCommentOrNote  = New(CodeNotOwnerOfCommentOrNote, "commentId",
		"You are not the owner of the comment or the note to which the comment relates")
	ErrSelfRating           = New(CodeSelfRating, "noteId", "You can't rate your own note")
	ErrTooManyLoginAttempts = New(CodeTooManyLoginAttempts, "login", "Too many failed login attempts, try again later")
	ErrAllParametersNull    = New(CodeAllParametersCannotBeNull, "parameters", "At least one field in the request must be non null")
)
