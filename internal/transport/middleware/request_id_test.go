package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/outbound-tracker/pkg/ctxutil"
)

func captureRequestID(t *testing.T, header, remoteAddr string) (ctxID, respID, ip string) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		ip, _ = ctxutil.ClientIPFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/views/today", nil)
	if header != "" {
		req.Header.Set("X-Request-Id", header)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, req)

	return ctxID, rec.Header().Get("X-Request-Id"), ip
}

func TestRequestID_Generated(t *testing.T) {
	ctxID, respID, _ := captureRequestID(t, "", "")

	if _, err := uuid.Parse(ctxID); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", ctxID, err)
	}
	if respID != ctxID {
		t.Errorf("response header %q != context id %q", respID, ctxID)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	ctxID, respID, _ := captureRequestID(t, "upstream-123", "")

	if ctxID != "upstream-123" || respID != "upstream-123" {
		t.Errorf("got ctx=%q resp=%q, want upstream-123", ctxID, respID)
	}
}

func TestRequestID_RejectsUnsafeHeader(t *testing.T) {
	tests := map[string]string{
		"too long":   strings.Repeat("a", maxRequestIDLen+1),
		"whitespace": "has space",
		"control":    "bad\x01id",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			ctxID, _, _ := captureRequestID(t, header, "")
			if ctxID == header {
				t.Errorf("unsafe id %q should have been replaced", header)
			}
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Errorf("replacement %q is not a UUID", ctxID)
			}
		})
	}
}

func TestRequestID_ClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"203.0.113.7:51234", "203.0.113.7"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"unix-socket", "unix-socket"},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			_, _, ip := captureRequestID(t, "", tt.remote)
			if ip != tt.want {
				t.Errorf("client ip = %q, want %q", ip, tt.want)
			}
		})
	}
}
