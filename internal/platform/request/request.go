// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/internal/platform/ctxutil"
	"github.com/taibuivan/digideck/internal/platform/sec"
	"github.com/taibuivan/digideck/internal/platform/validate"
)

// maxTextBody caps plain-text uploads such as deck imports.
const maxTextBody = 64 << 10

var errMissingSession = errors.New("requestutil: session middleware not mounted")

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ReadText reads a bounded plain-text request body.

Returns:
  - string: The body as text
  - error: apperr.ValidationError if the body is too large or unreadable
*/
func ReadText(request *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxTextBody+1))
	if err != nil {
		return "", apperr.ValidationError("Unreadable request body")
	}
	if len(body) > maxTextBody {
		return "", apperr.ValidationError("Request body too large")
	}
	return string(body), nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
SessionID returns the anonymous browsing session resolved by the session middleware.

Returns:
  - string: Session UUID
  - error: apperr.Internal if the middleware is not mounted
*/
func SessionID(request *http.Request) (string, error) {
	id := ctxutil.GetSessionID(request.Context())
	if id == "" {
		return "", apperr.Internal(errMissingSession)
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
