package errors

import (
	"net/http"
)

// Content types of error response bodies.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Response is the transport-level rendering of an [Error].
type Response struct {
	// Status is http.StatusNotFound or http.StatusBadRequest.
	Status int

	// ContentType is ContentTypeJSON for classified errors and
	// ContentTypeText for the unclassified fallback.
	ContentType string

	// Body is the serialized kind, or the cause's message when the
	// error has no kind.
	Body []byte

	// Unclassified is true when Body is the plain-text fallback.
	// Responders count these so missing classifications get noticed.
	Unclassified bool
}

// HTTPStatus returns the transport status for the error. It is
// http.StatusNotFound when the cause chain carries the persistence layer's
// [RecordNotFound] marker and http.StatusBadRequest otherwise, whatever the
// kind. Clients branch on the kind's tag for anything finer.
func (e *Error) HTTPStatus() int {
	if IsRecordNotFound(e.cause) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// Response renders the error for a client. The trace is never included.
func (e *Error) Response() Response {
	status := e.HTTPStatus()
	if e.hasKind {
		body, err := e.kind.MarshalJSON()
		if err == nil {
			return Response{Status: status, ContentType: ContentTypeJSON, Body: body}
		}
	}
	return Response{
		Status:       status,
		ContentType:  ContentTypeText,
		Body:         []byte(e.cause.Error()),
		Unclassified: true,
	}
}
