package auth

import (
	"net/http"
	"net/url"
)

// LoginRequired redirects anonymous requests to loginURL, passing the requested
// path in the "next" query parameter.
func LoginRequired(loginURL string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetUserIDFromContext(r.Context()); err != nil {
			http.Redirect(w, r, LoginRedirectURL(loginURL, r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func LoginRedirectURL(loginURL, nextPath string) string {
	return loginURL + "?" + url.Values{"next": {nextPath}}.Encode()
}

// SafeNext returns target when it is a local absolute path, otherwise fallback.
func SafeNext(target, fallback string) string {
	if target == "" || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return target
}
