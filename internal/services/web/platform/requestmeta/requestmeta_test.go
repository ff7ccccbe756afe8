package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsCrossOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		origin  string
		referer string
		policy  SchemePolicy
		want    bool
	}{
		{name: "no headers", target: "http://builld.test/contact", want: false},
		{name: "same origin", target: "http://builld.test/contact", origin: "http://builld.test", want: false},
		{name: "other host", target: "http://builld.test/contact", origin: "http://evil.test", want: true},
		{name: "other port", target: "http://builld.test/contact", origin: "http://builld.test:8080", want: true},
		{name: "explicit default port", target: "http://builld.test/contact", origin: "http://builld.test:80", want: false},
		{name: "opaque origin", target: "http://builld.test/contact", origin: "null", want: true},
		{name: "referer fallback", target: "http://builld.test/contact", referer: "http://builld.test/#section-contact", want: false},
		{name: "referer other host", target: "http://builld.test/contact", referer: "https://evil.test/", want: true},
		{name: "scheme mismatch", target: "http://builld.test/contact", origin: "https://builld.test", want: true},
		{
			name:   "trusted forwarded proto",
			target: "http://builld.test/contact",
			origin: "https://builld.test",
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			req.Header.Set("X-Forwarded-Proto", "https")
			if got := IsCrossOrigin(req, tc.policy); got != tc.want {
				t.Fatalf("IsCrossOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsCrossOriginNilRequest(t *testing.T) {
	t.Parallel()

	if IsCrossOrigin(nil, SchemePolicy{}) {
		t.Fatalf("expected nil request to be same-origin")
	}
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://Builld.test:8080/", nil)
	if got := Origin(req, SchemePolicy{}); got != "http://builld.test:8080" {
		t.Fatalf("Origin() = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "http://builld.test/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := Origin(req, SchemePolicy{TrustForwardedProto: true}); got != "https://builld.test" {
		t.Fatalf("Origin(trusted) = %q", got)
	}
	if got := Origin(nil, SchemePolicy{}); got != "" {
		t.Fatalf("Origin(nil) = %q, want empty", got)
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	if IsHTTPS(nil) {
		t.Fatalf("expected nil request to be non-https")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if IsHTTPS(req) {
		t.Fatalf("expected http URL to be non-https")
	}

	req = httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(req) {
		t.Fatalf("expected forwarded header to be ignored by default")
	}

	if got := IsHTTPSWithPolicy(req, SchemePolicy{TrustForwardedProto: true}); !got {
		t.Fatalf("IsHTTPSWithPolicy() = %v, want true", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	if !IsHTTPS(req) {
		t.Fatalf("expected TLS request to be https")
	}
}
