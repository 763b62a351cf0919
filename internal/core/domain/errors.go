package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Infrastructure-independent errors that are not part of the annotation wire taxonomy.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArchiveUnavailable indicates the export archive is not configured.
	ErrArchiveUnavailable = errors.New("export archive unavailable")
)

// ErrorKind is the wire tag of an annotation failure.
type ErrorKind string

// Error kinds. The string values are part of the wire format.
const (
	KindSessionNotFound         ErrorKind = "SessionNotFound"
	KindDuplicateChunkID        ErrorKind = "DuplicateChunkId"
	KindInvalidConfig           ErrorKind = "InvalidConfig"
	KindChunkNotFound           ErrorKind = "ChunkNotFound"
	KindInvalidCategory         ErrorKind = "InvalidCategory"
	KindInvalidSubtype          ErrorKind = "InvalidSubtype"
	KindSubtypeCategoryMismatch ErrorKind = "SubtypeCategoryMismatch"
	KindInvalidRelationType     ErrorKind = "InvalidRelationType"
	KindTargetNotFound          ErrorKind = "TargetNotFound"

	// Boundary kinds, produced outside the annotation core.
	KindValidation  ErrorKind = "ValidationError"
	KindUnknownTool ErrorKind = "UnknownTool"
	KindInternal    ErrorKind = "InternalError"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrSessionNotFound         = &Error{Kind: KindSessionNotFound}
	ErrDuplicateChunkID        = &Error{Kind: KindDuplicateChunkID}
	ErrInvalidConfig           = &Error{Kind: KindInvalidConfig}
	ErrChunkNotFound           = &Error{Kind: KindChunkNotFound}
	ErrInvalidCategory         = &Error{Kind: KindInvalidCategory}
	ErrInvalidSubtype          = &Error{Kind: KindInvalidSubtype}
	ErrSubtypeCategoryMismatch = &Error{Kind: KindSubtypeCategoryMismatch}
	ErrInvalidRelationType     = &Error{Kind: KindInvalidRelationType}
	ErrTargetNotFound          = &Error{Kind: KindTargetNotFound}
)

// Error is a tagged annotation failure. Only the fields relevant to the
// kind are set; the JSON encoding is the error payload returned to callers.
type Error struct {
	Kind          ErrorKind `json:"type"`
	SessionID     string    `json:"sessionId,omitempty"`
	ChunkID       string    `json:"chunkId,omitempty"`
	Category      string    `json:"category,omitempty"`
	Subtype       string    `json:"subtype,omitempty"`
	RelationType  string    `json:"relationType,omitempty"`
	TargetChunkID string    `json:"targetChunkId,omitempty"`
	ValidOptions  []string  `json:"validOptions,omitempty"`
	Issues        []string  `json:"issues,omitempty"`
	Message       string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NewValidation reports request arguments that failed shape validation.
func NewValidation(issues ...string) *Error {
	return &Error{Kind: KindValidation, Issues: issues, Message: "Invalid input parameters"}
}

// NewSessionNotFound reports a missing session.
func NewSessionNotFound(sessionID string) *Error {
	return &Error{
		Kind:      KindSessionNotFound,
		SessionID: sessionID,
		Message:   fmt.Sprintf("Session not found: %s", sessionID),
	}
}

// NewChunkNotFound reports a chunk id that is not part of a session's configuration.
func NewChunkNotFound(chunkID, message string) *Error {
	return &Error{Kind: KindChunkNotFound, ChunkID: chunkID, Message: message}
}

// NewTargetNotFound reports a relation endpoint that does not resolve.
func NewTargetNotFound(chunkID, message string) *Error {
	return &Error{Kind: KindTargetNotFound, TargetChunkID: chunkID, Message: message}
}

// NewDuplicateChunkID reports a repeated chunk id in a session configuration.
func NewDuplicateChunkID(chunkID string) *Error {
	return &Error{
		Kind:    KindDuplicateChunkID,
		ChunkID: chunkID,
		Message: fmt.Sprintf("Duplicate chunk_id found: %s", chunkID),
	}
}

// NewInvalidConfig reports structural problems with a session configuration.
func NewInvalidConfig(issues ...string) *Error {
	msg := "Config validation failed"
	if len(issues) > 0 {
		msg += ": " + strings.Join(issues, ", ")
	}
	return &Error{Kind: KindInvalidConfig, Issues: issues, Message: msg}
}

// NewSubtypeCategoryMismatch reports a subtype keyed by a category absent from the same call.
func NewSubtypeCategoryMismatch(category, subtype string) *Error {
	return &Error{
		Kind:     KindSubtypeCategoryMismatch,
		Category: category,
		Subtype:  subtype,
		Message:  fmt.Sprintf("Category '%s' in subtypes but not in categories array", category),
	}
}
