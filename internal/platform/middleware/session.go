// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/taibuivan/digideck/internal/platform/constants"
	"github.com/taibuivan/digideck/internal/platform/ctxutil"
)

// # Browsing Session

/*
Session resolves the anonymous browsing session that owns the local deck
slot and the card browser state.

Resolution order:
 1. The session cookie.
 2. The X-Session-ID header (used by the CLI and other non-browser clients).
 3. A freshly generated UUIDv7, which is sent back as a cookie.

Values that are not UUIDs are ignored so a client cannot address
arbitrary storage keys.
*/
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			sessionID := ""
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && isUUID(cookie.Value) {
				sessionID = cookie.Value
			} else if header := request.Header.Get(constants.HeaderXSessionID); isUUID(header) {
				sessionID = header
			}

			if sessionID == "" {
				sessionID = newID()
				http.SetCookie(writer, &http.Cookie{
					Name:     constants.SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   constants.SessionCookieMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			writer.Header().Set(constants.HeaderXSessionID, sessionID)
			ctx := ctxutil.WithSessionID(request.Context(), sessionID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func isUUID(value string) bool {
	if value == "" {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
