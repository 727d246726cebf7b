package auth

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/hex"
    "errors"
    "strconv"
    "strings"
    "time"
)

var (
    ErrTokenFormat  = errors.New("invalid token format")
    ErrTokenSig     = errors.New("invalid token signature")
    ErrTokenExp     = errors.New("token expired")
    ErrTokenSubject = errors.New("token subject mismatch")
)

// GenerateFeedToken builds a bearer token granting a subject access to the
// UI event feed until exp.
// Format: base64url(subject + "." + exp_unix + "." + hex(hmac_sha256(secret, subject+"."+exp)))
func GenerateFeedToken(secret, subject string, expUnix int64) string {
    msg := subject + "." + strconv.FormatInt(expUnix, 10)
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(msg))
    sig := hex.EncodeToString(mac.Sum(nil))
    return base64.RawURLEncoding.EncodeToString([]byte(msg + "." + sig))
}

// ValidateFeedToken parses and validates the token, returning the embedded
// subject and expiry.
func ValidateFeedToken(secret, token, expectSubject string, now time.Time, skewSeconds int) (string, int64, error) {
    b, err := base64.RawURLEncoding.DecodeString(token)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    parts := strings.Split(string(b), ".")
    if len(parts) != 3 {
        return "", 0, ErrTokenFormat
    }
    subject, expStr, sigHex := parts[0], parts[1], parts[2]
    exp, err := strconv.ParseInt(expStr, 10, 64)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    if expectSubject != "" && subject != expectSubject {
        return "", 0, ErrTokenSubject
    }
    msg := subject + "." + expStr
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(msg))
    want := mac.Sum(nil)
    got, err := hex.DecodeString(sigHex)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    // constant-time compare
    if !hmac.Equal(want, got) {
        return "", 0, ErrTokenSig
    }
    if now.Unix() > exp+int64(skewSeconds) {
        return "", 0, ErrTokenExp
    }
    return subject, exp, nil
}
