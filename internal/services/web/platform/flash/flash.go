// Package flash carries one pending toast across a redirect. The next page
// render takes it from the cookie and shows it through the toast region.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/builld/web/internal/services/web/platform/requestmeta"
	"github.com/builld/web/internal/site/toast"
)

// CookieName holds the pending toast.
const CookieName = "builld_toast"

// maxDuration bounds what a cookie can ask for.
const maxDuration = time.Minute

// Notice is a toast waiting for the next page render. MessageKey and
// DescriptionKey are catalog keys, resolved in the visitor's language when
// the toast is rendered.
type Notice struct {
	Type           toast.Type     `json:"type"`
	Position       toast.Position `json:"position,omitempty"`
	MessageKey     string         `json:"message"`
	DescriptionKey string         `json:"description,omitempty"`
	Duration       time.Duration  `json:"duration,omitempty"`
}

// Success queues a success toast with an optional second line.
func Success(messageKey, descriptionKey string) Notice {
	return Notice{Type: toast.Success, MessageKey: messageKey, DescriptionKey: descriptionKey}
}

// Failure queues an error toast.
func Failure(messageKey string) Notice {
	return Notice{Type: toast.Error, MessageKey: messageKey}
}

// Options converts n into notifier options once description is resolved.
func (n Notice) Options(description string) toast.Options {
	return toast.Options{
		Description: description,
		Type:        n.Type,
		Position:    n.Position,
		Duration:    n.Duration,
	}
}

// Write stores notice for the next page render. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, cookie(r, policy, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// Take reads the pending notice and expires the cookie. A cookie that does
// not decode is still expired.
func Take(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	stored, err := r.Cookie(CookieName)
	if err != nil || stored == nil {
		return Notice{}, false
	}
	Clear(w, r, policy)
	return decode(stored.Value)
}

// Clear expires any pending notice.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, cookie(r, policy, "", -1))
}

func cookie(r *http.Request, policy requestmeta.SchemePolicy, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.MessageKey = strings.TrimSpace(notice.MessageKey)
	notice.DescriptionKey = strings.TrimSpace(notice.DescriptionKey)
	if notice.MessageKey == "" {
		return Notice{}, false
	}
	notice.Type = toast.Type(strings.ToLower(strings.TrimSpace(string(notice.Type))))
	if !notice.Type.Valid() {
		return Notice{}, false
	}
	if notice.Position == "" {
		notice.Position = toast.TopRight
	}
	if !notice.Position.Valid() {
		return Notice{}, false
	}
	if notice.Duration < 0 || notice.Duration > maxDuration {
		notice.Duration = 0
	}
	return notice, true
}
