// Package account はアカウント登録・ログイン・ログアウト・携帯番号検索のドメインロジックを提供する。
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/accountapi/internal/metrics"
	"github.com/hitoshi/accountapi/internal/model"
	"github.com/hitoshi/accountapi/internal/repository"
	"github.com/hitoshi/accountapi/internal/validate"
)

const (
	nameMinLength    = 3
	addressMinLength = 10
)

// 検証エラーのメッセージ。クライアントにそのまま返す。
const (
	msgAllFieldsRequired   = "All fields are required"
	msgNameTooShort        = "Name must be at least 3 characters long"
	msgInvalidEmail        = "Invalid email format"
	msgAddressTooShort     = "Address must be at least 10 characters long"
	msgInvalidPassword     = "Password must be at least 7 characters long and contain at least one special character"
	msgInvalidMobileNumber = "Invalid mobile number"
	msgCredentialsRequired = "Email and password are required"
	msgLogoutEmailRequired = "Email is required for logout"
	msgInvalidMobileFormat = "Invalid mobile number format"
)

// TokenSigner はログイントークンの発行インターフェース。
type TokenSigner interface {
	Sign(email string) (string, error)
}

// SessionStore はアクティブセッションの保持インターフェース。
type SessionStore interface {
	// Create はセッションを追加する。重複は拒否しない。
	Create(token, email string)
	// RemoveByEmail は最初に一致したセッションを削除して返す。見つからない場合はnilを返す。
	RemoveByEmail(email string) *model.Session
}

// Service はアカウント管理のサービス層。
type Service struct {
	accountRepo repository.AccountRepository
	signer      TokenSigner
	sessions    SessionStore
	metrics     metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorがnilの場合はメトリクスを記録しない。
func NewService(
	accountRepo repository.AccountRepository,
	signer TokenSigner,
	sessions SessionStore,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		signer:      signer,
		sessions:    sessions,
		metrics:     collector,
	}
}

// Register はアカウントを登録する。
// 検証は以下の順で行い、最初に失敗した項目のエラーを返す:
// 必須項目 → 名前 → メール形式 → 住所 → パスワード → 携帯番号 → メール重複。
// 検証に失敗した場合はストアにアクセスしない。
func (s *Service) Register(ctx context.Context, account model.Account) (err error) {
	defer func() { s.recordRegistration(err) }()

	if err := validateAccount(account); err != nil {
		return err
	}

	// 1. メールアドレスの重複確認
	existing, err := s.accountRepo.FindByEmail(ctx, account.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return model.NewDuplicateEmailError()
	}

	// 2. 登録
	if err := s.accountRepo.Create(ctx, &account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("account registered", slog.String("email", account.Email))
	return nil
}

// Login はメールアドレスとパスワードが一致するアカウントに対してトークンを発行し、
// セッションを追加する。同一アカウントの複数ログインはそれぞれ独立したセッションになる。
func (s *Service) Login(ctx context.Context, email, password string) (session *model.Session, err error) {
	defer func() { s.recordLogin(err) }()

	if email == "" || password == "" {
		return nil, model.NewMissingFieldsError(msgCredentialsRequired)
	}

	account, err := s.accountRepo.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.signer.Sign(account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.sessions.Create(token, account.Email)

	slog.Info("user logged in", slog.String("email", account.Email))
	return &model.Session{Token: token, Email: account.Email}, nil
}

// Logout はメールアドレスに一致する最初のセッションを削除し、そのセッションを返す。
// トークンの所持は確認しない。
func (s *Service) Logout(ctx context.Context, email string) (session *model.Session, err error) {
	defer func() { s.recordLogout(err) }()

	if email == "" {
		return nil, model.NewMissingFieldsError(msgLogoutEmailRequired)
	}

	removed := s.sessions.RemoveByEmail(email)
	if removed == nil {
		return nil, model.NewSessionNotFoundError()
	}

	slog.Info("user logged out", slog.String("email", email))
	return removed, nil
}

// FindNamesByMobile は携帯電話番号が一致する全アカウントの名前をストアの返却順で返す。
// 該当なしの場合は空スライスを返す（nilは返さない）。
func (s *Service) FindNamesByMobile(ctx context.Context, mobileNumber string) ([]string, error) {
	if !validate.MobileNumber(mobileNumber) {
		return nil, model.NewValidationError(msgInvalidMobileFormat)
	}

	names, err := s.accountRepo.ListNamesByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list names by mobile number: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// validateAccount は登録内容を順に検証し、最初に失敗した項目のエラーを返す。
func validateAccount(a model.Account) error {
	switch {
	case a.Name == "" || a.Email == "" || a.Address == "" || a.Password == "" || a.MobileNumber == "":
		return model.NewMissingFieldsError(msgAllFieldsRequired)
	case utf8.RuneCountInString(a.Name) < nameMinLength:
		return model.NewValidationError(msgNameTooShort)
	case !validate.Email(a.Email):
		return model.NewValidationError(msgInvalidEmail)
	case utf8.RuneCountInString(a.Address) < addressMinLength:
		return model.NewValidationError(msgAddressTooShort)
	case !validate.Password(a.Password):
		return model.NewValidationError(msgInvalidPassword)
	case !validate.MobileNumber(a.MobileNumber):
		return model.NewValidationError(msgInvalidMobileNumber)
	}
	return nil
}

func (s *Service) recordRegistration(err error) {
	if s.metrics != nil {
		s.metrics.RecordRegistration(resultOf(err))
	}
}

func (s *Service) recordLogin(err error) {
	if s.metrics != nil {
		s.metrics.RecordLogin(resultOf(err))
	}
}

func (s *Service) recordLogout(err error) {
	if s.metrics != nil {
		s.metrics.RecordLogout(resultOf(err))
	}
}

// resultOf はエラーをメトリクスの結果ラベルに変換する。
func resultOf(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return strings.ToLower(apiErr.Code)
	}
	return "internal_error"
}
