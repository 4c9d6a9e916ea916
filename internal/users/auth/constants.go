// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is how long a login lasts.
	AccessTokenTTL = 12 * time.Hour

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MinUsernameLength and MaxUsernameLength bound usernames.
	MinUsernameLength = 3
	MaxUsernameLength = 32
)
