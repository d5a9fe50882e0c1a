package pathutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "uuid", value: "3f0c1b9e-8a4d-4c55-9d0e-1f2a3b4c5d6e", want: "3f0c1b9e-8a4d-4c55-9d0e-1f2a3b4c5d6e"},
		{name: "short", value: "c1", want: "c1"},
		{name: "empty", value: "", wantErr: ErrInvalidID},
		{name: "too long", value: strings.Repeat("a", 65), wantErr: ErrInvalidID},
		{name: "bad chars", value: "a;drop", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/content/x", nil)
			req.SetPathValue("id", tt.value)

			got, err := PathID(req, "id")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PathID() = %q, want %q", got, tt.want)
			}
		})
	}
}
