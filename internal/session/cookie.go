package session

import "net/http"

const (
	CookieName = "session"

	// One day, matching the session TTL.
	cookieMaxAge = 86400
)

// SetCookie issues the session cookie to the client. HttpOnly and
// SameSite=Strict always; Secure only in production so local
// development over plain HTTP keeps working.
func SetCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie invalidates the session cookie at the same path it was
// issued on.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
