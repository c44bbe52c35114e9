package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aatuh/ulid-toolkit/ulid"
	"github.com/aatuh/ulid-toolkit/validation"
)

// Problem types returned by the ULID endpoints.
const (
	TypeDecode     = "urn:ulid:problem:decode"
	TypeInvalidID  = "urn:ulid:problem:invalid-uuid"
	TypeRange      = "urn:ulid:problem:range"
	TypeCalendar   = "urn:ulid:problem:calendar"
	TypeValidation = "urn:ulid:problem:validation"
	TypeExhausted  = "urn:ulid:problem:exhausted"
)

// Problem represents an RFC 7807 problem+json response body.
// See: https://datatracker.ietf.org/doc/html/rfc7807
type Problem struct {
	Type     string         `json:"type,omitempty"`
	Title    string         `json:"title,omitempty"`
	Status   int            `json:"status,omitempty"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Ext      map[string]any `json:"-"`
}

// With adds an extension field to the problem payload.
func (p *Problem) With(key string, value any) *Problem {
	if key == "" {
		return p
	}
	if p.Ext == nil {
		p.Ext = make(map[string]any)
	}
	p.Ext[key] = value
	return p
}

// WriteProblem writes a problem+json response with the provided status code.
// Extension fields never override the standard members.
func WriteProblem(w http.ResponseWriter, status int, p Problem) {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	p.Status = status

	out := map[string]any{}
	for k, v := range p.Ext {
		out[k] = v
	}
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set("type", p.Type)
	set("title", p.Title)
	set("detail", p.Detail)
	set("instance", p.Instance)
	out["status"] = p.Status

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

// WriteSimpleProblem is a convenience for common cases.
func WriteSimpleProblem(w http.ResponseWriter, status int, title, detail string) {
	WriteProblem(w, status, Problem{Title: title, Detail: detail})
}

// WriteJSON writes v as application/json.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps errors from the ulid and validation packages to problem
// responses. Anything else becomes a 500 without leaking its message.
func WriteError(w http.ResponseWriter, err error) {
	var (
		decodeErr   *ulid.DecodeError
		uuidErr     *ulid.InvalidUUIDError
		rangeErr    *ulid.RangeError
		calendarErr *ulid.CalendarError
	)
	switch {
	case errors.As(err, &decodeErr):
		p := Problem{Type: TypeDecode, Title: "Invalid ULID", Detail: decodeErr.Err.Error()}
		WriteProblem(w, http.StatusBadRequest, *p.With("input", decodeErr.Input))
	case errors.As(err, &uuidErr):
		p := Problem{Type: TypeInvalidID, Title: "Invalid UUID", Detail: uuidErr.Err.Error()}
		WriteProblem(w, http.StatusBadRequest, *p.With("input", uuidErr.Input))
	case errors.As(err, &rangeErr):
		p := Problem{Type: TypeRange, Title: "Value out of range", Detail: rangeErr.Error()}
		WriteProblem(w, http.StatusBadRequest, *p.With("field", rangeErr.Field))
	case errors.As(err, &calendarErr):
		WriteProblem(w, http.StatusBadRequest, Problem{Type: TypeCalendar, Title: "Invalid datetime", Detail: calendarErr.Reason})
	case len(validation.Fields(err)) > 0:
		p := Problem{Type: TypeValidation, Title: "Validation failed", Detail: err.Error()}
		WriteProblem(w, http.StatusUnprocessableEntity, *p.With("errors", validation.Fields(err)))
	default:
		WriteSimpleProblem(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), "internal server error")
	}
}
