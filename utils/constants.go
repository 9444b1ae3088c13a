// File: utils/constants.go
package utils

import "time"

// RevokedTokenPrefix is the prefix used for Redis revoked-token keys.
const RevokedTokenPrefix = "revoked:"

// RevokedTokenTTL is how long a revoked token hash is retained. It only
// needs to outlive the longest token expiry.
const RevokedTokenTTL = 24 * time.Hour
