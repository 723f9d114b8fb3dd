package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

const (
	sessionCookieName = "planner_session"
	minSecretLen      = 32
)

var (
	errMissingToken = errors.New("missing token")
	errTokenFormat  = errors.New("invalid token format")
	errSignature    = errors.New("invalid signature")
)

// CreateOrgToken は組織IDから署名付きトークンを生成する
func CreateOrgToken(orgID string, secret []byte) string {
	return base64.URLEncoding.EncodeToString([]byte(orgID)) + "." + sign([]byte(orgID), secret)
}

// VerifyOrgToken はトークンを検証し組織IDを返す
func VerifyOrgToken(token string, secret []byte) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", errTokenFormat
	}
	orgID, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return "", err
	}
	if len(orgID) == 0 {
		return "", errTokenFormat
	}
	if !hmac.Equal([]byte(sign(orgID, secret)), []byte(sig)) {
		return "", errSignature
	}
	return string(orgID), nil
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SecretBytes は文字列から署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}

// tokenFromRequest は Authorization: Bearer ヘッダ、なければセッションクッキーからトークンを取り出す
func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			return "", errTokenFormat
		}
		return token, nil
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", errMissingToken
	}
	return cookie.Value, nil
}
