package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// FlashCookieName carries a notice across the redirect that closes the modal.
const FlashCookieName = "skillswap_flash"

// WriteFlash stores a notice cookie for the next page render.
func WriteFlash(w http.ResponseWriter, r *http.Request, notice Notice) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash reads and clears the notice cookie.
func ReadFlash(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	if w != nil {
		ClearFlash(w, r)
	}
	return decodeNotice(cookie.Value)
}

// ClearFlash expires the notice cookie.
func ClearFlash(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// FlashSink adapts the flash cookie into a Sink bound to one response.
func FlashSink(w http.ResponseWriter, r *http.Request) Sink {
	return SinkFunc(func(_ context.Context, notice Notice) {
		WriteFlash(w, r, notice)
	})
}

func decodeNotice(raw string) (Notice, bool) {
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
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Title = strings.TrimSpace(notice.Title)
	notice.Description = strings.TrimSpace(notice.Description)
	if notice.IsZero() {
		return Notice{}, false
	}
	notice.Severity = Severity(strings.ToLower(strings.TrimSpace(string(notice.Severity))))
	switch notice.Severity {
	case "":
		notice.Severity = SeverityDefault
	case SeverityDefault, SeverityDestructive:
	default:
		return Notice{}, false
	}
	return notice, true
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
