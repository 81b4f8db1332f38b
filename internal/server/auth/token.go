// Package auth issues the range's session tokens.
//
// A token is the standard base64 encoding of "<userID>-<secret>-<unixMillis>".
// It carries no signature and no expiry: anyone who knows the secret and
// an account id can forge one, and decoding any token reveals the secret.
// The server only issues tokens; ParseToken exists for tests and for
// exercises that decode or forge them.
package auth

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wcorp/cyberrange/internal/common"
)

// Claims are the parts a token decodes into.
type Claims struct {
	UserID   string
	Secret   string
	IssuedAt time.Time
}

// IssueToken builds the token for userID at now.
func IssueToken(userID any, secret string, now time.Time) string {
	raw := fmt.Sprintf("%v-%s-%d", userID, secret, now.UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseToken splits a token back into its parts. The user id ends at the
// first dash and the timestamp starts after the last one, so secrets that
// contain dashes survive the round trip.
func ParseToken(token string) (*Claims, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	s := string(b)

	first := strings.Index(s, "-")
	last := strings.LastIndex(s, "-")
	if first < 0 || first == last {
		return nil, fmt.Errorf("%w: malformed token", common.ErrorUnauthorized)
	}

	ms, err := strconv.ParseInt(s[last+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp", common.ErrorUnauthorized)
	}

	return &Claims{
		UserID:   s[:first],
		Secret:   s[first+1 : last],
		IssuedAt: time.UnixMilli(ms),
	}, nil
}
