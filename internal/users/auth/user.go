// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements deck builder accounts.

A signed-in user owns the decks saved to the remote collection. Accounts
are created with a password and exchanged for a short-lived RS256 access
token; there is no refresh flow, the client logs in again.
*/
package auth

import (
	"time"

	"github.com/taibuivan/digideck/internal/platform/sec"
)

// # Domain Entities

// User represents a registered deck builder.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Field names shared by validation and responses.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
