package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
	"github.com/pschlie1/it-capacity-planner-sub001/pkg/auth"
)

// maxBodyBytes はリクエストボディの上限
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// orgID は認証ミドルウェアがセットした組織IDを返す。未設定なら 401 を書き込む
func orgID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}

// decodeJSON はボディを v にデコードする。失敗時は 400 invalid_json を書き込む
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// serviceError はサービス層のエラーを HTTP ステータスに変換する
//   - model.ErrValidation → 400（メッセージをそのまま返す）
//   - repository.ErrNotFound → 404 not_found
//   - それ以外 → 500 <op>_failed
func serviceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		slog.ErrorContext(r.Context(), op+" failed",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, op+"_failed")
	}
}
