// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/hitoshi/accountapi/internal/middleware"
	"github.com/hitoshi/accountapi/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	Register(ctx context.Context, account model.Account) error
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, email string) (*model.Session, error)
	FindNamesByMobile(ctx context.Context, mobileNumber string) ([]string, error)
}

// AccountHandler はアカウント関連のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// messageResponse は処理結果メッセージのみのレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// sessionResponse はログイン・ログアウトのレスポンス。
type sessionResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

// Register はアカウントを登録する。
// POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}

	account := model.Account{
		Name:         form.get("name"),
		Email:        form.get("email"),
		Address:      form.get("address"),
		Password:     form.get("password"),
		MobileNumber: form.get("mobile_number"),
	}

	if err := h.service.Register(r.Context(), account); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User registered successfully"})
}

// Login は認証情報を検証してトークンを発行する。
// POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), form.get("email"), form.get("password"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Login successful",
		Token:   session.Token,
		Email:   session.Email,
	})
}

// Logout はメールアドレスに一致する最初のセッションを削除する。
// POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}

	session, err := h.service.Logout(r.Context(), form.get("email"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Logout successful",
		Token:   session.Token,
		Email:   session.Email,
	})
}

// Users は携帯電話番号が一致するアカウントの名前一覧を返す。
// POST /users
func (h *AccountHandler) Users(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}

	names, err := h.service.FindNamesByMobile(r.Context(), form.get("mobile_number"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}

// requestForm はJSONまたはフォーム形式のリクエストボディから読み取った項目。
type requestForm map[string]string

// get は項目の値を返す。存在しない場合は空文字を返す。
func (f requestForm) get(key string) string {
	return f[key]
}

// decodeForm はContent-Typeに応じてリクエストボディを解析する。
// application/json はJSONオブジェクトとして、それ以外はフォームとして扱う。
// JSONの数値・真偽値は文字列に変換し、nullは未指定として扱う。
// 空のボディはエラーにせず、全項目未指定として返す。
func decodeForm(r *http.Request) (requestForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		form := requestForm{}
		for key := range r.PostForm {
			form[key] = r.PostForm.Get(key)
		}
		return form, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return requestForm{}, nil
		}
		return nil, fmt.Errorf("failed to decode JSON body: %w", err)
	}

	form := requestForm{}
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			// 未指定として扱う
		case string:
			form[key] = v
		case json.Number:
			form[key] = v.String()
		case bool:
			form[key] = fmt.Sprintf("%t", v)
		default:
			return nil, fmt.Errorf("field %q must be a scalar value", key)
		}
	}
	return form, nil
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeInvalidRequest はリクエストボディの解析失敗を400で返す。
func writeInvalidRequest(w http.ResponseWriter, err error) {
	slog.Warn("invalid request body", slog.String("error", err.Error()))
	middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError().Message)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr.Message)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorのコードをHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMissingFields,
		model.ErrCodeValidationFailed,
		model.ErrCodeDuplicateEmail,
		model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
