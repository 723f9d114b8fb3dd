package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type contextKey string

const orgIDKey contextKey = "org_id"

// OrgIDFromContext は context から組織IDを取得する
func OrgIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(orgIDKey).(string)
	return v, ok && v != ""
}

// WithOrgID は context に組織IDをセットする
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgIDKey, orgID)
}

// RequireOrg は認証必須ミドルウェア。トークンを検証し、組織IDを context にセットする
func RequireOrg(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenFromRequest(r)
			if err != nil {
				code := "invalid_token"
				if errors.Is(err, errMissingToken) {
					code = "unauthorized"
				}
				writeUnauthorized(w, code)
				return
			}

			orgID, err := VerifyOrgToken(token, secret)
			if err != nil {
				writeUnauthorized(w, "invalid_token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOrgID(r.Context(), orgID)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// DevOrgID は開発用の組織ID（server.auth_required=false 時に使用）
const DevOrgID = "dev-org"

// DevAuth は開発用ミドルウェア。X-Org-ID ヘッダがあればそれを、なければ DevOrgID をセットする
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := r.Header.Get("X-Org-ID")
		if orgID == "" {
			orgID = DevOrgID
		}
		next.ServeHTTP(w, r.WithContext(WithOrgID(r.Context(), orgID)))
	})
}
