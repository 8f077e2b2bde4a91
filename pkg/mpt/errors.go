package mpt

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrorKind buckets remote failures by how the sync engine reacts to
// them: validation and not_found are per-row, auth aborts the file,
// transient is recorded and the run continues.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindTransient  ErrorKind = "transient"
)

// RemoteError is the normalized form of every non-2xx response.
type RemoteError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Fields  map[string]string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, reason := range e.Fields {
			parts = append(parts, field+": "+reason)
		}
		msg = msg + " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Status == 0 {
		return msg
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
}

// errorBody is the platform's error envelope.
type errorBody struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors"`
}

func remoteErrorFrom(resp *resty.Response) *RemoteError {
	remote := &RemoteError{
		Status: resp.StatusCode(),
		Kind:   kindForStatus(resp.StatusCode()),
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		remote.Message = body.Detail
		if remote.Message == "" {
			remote.Message = body.Title
		}
		remote.Fields = body.Errors
	}
	if remote.Message == "" {
		remote.Message = http.StatusText(resp.StatusCode())
	}
	return remote
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindTransient
	}
}

func isKind(err error, kind ErrorKind) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Kind == kind
}

func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
func IsConflict(err error) bool   { return isKind(err, KindConflict) }
func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsAuth(err error) bool       { return isKind(err, KindAuth) }
func IsTransient(err error) bool  { return isKind(err, KindTransient) }
