package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/popover/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{"coded", errors.New(errors.ErrCodeInvalidScene, "bad node"), 400, errors.ErrCodeInvalidScene, "bad node"},
		{"not found", errors.New(errors.ErrCodeNotFound, "gone"), 404, errors.ErrCodeNotFound, "gone"},
		{"plain", fmt.Errorf("disk on fire"), 500, errors.ErrCodeInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Error.Code != tt.wantCode || body.Error.Message != tt.wantMsg {
				t.Errorf("body = %+v, want %s %q", body.Error, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestReadBodyLimit(t *testing.T) {
	big := strings.NewReader(strings.Repeat("x", MaxBodySize+1))
	req := httptest.NewRequest(http.MethodPost, "/", big)
	_, err := ReadBody(httptest.NewRecorder(), req)
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("ReadBody() oversized error = %v, want INVALID_INPUT", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok"))
	data, err := ReadBody(httptest.NewRecorder(), req)
	if err != nil || string(data) != "ok" {
		t.Errorf("ReadBody() = %q, %v", data, err)
	}
}

func TestWriteBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteBytes(rec, "image/svg+xml", []byte("<svg/>"))
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "<svg/>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
