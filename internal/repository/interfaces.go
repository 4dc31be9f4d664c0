// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/accountapi/internal/model"
)

// AccountRepository はアカウントデータの永続化インターフェース。
// すべての操作はパラメータ化クエリで実行する。
type AccountRepository interface {
	// FindByEmail は指定メールアドレスのアカウントを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// FindByCredentials はメールアドレスとパスワードの両方が完全一致するアカウントを取得する。
	// パスワードは平文のままクエリで比較する。見つからない場合はnilを返す。
	FindByCredentials(ctx context.Context, email, password string) (*model.Account, error)

	// Create はアカウントを作成する。
	Create(ctx context.Context, account *model.Account) error

	// ListNamesByMobileNumber は携帯電話番号が完全一致する全アカウントの名前を登録順で返す。
	// 該当なしの場合は空スライスを返す。
	ListNamesByMobileNumber(ctx context.Context, mobileNumber string) ([]string, error)
}
