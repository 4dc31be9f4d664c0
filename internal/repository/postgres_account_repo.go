package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/accountapi/internal/model"
)

// PostgresAccountRepo はPostgreSQLを使用したアカウントリポジトリ。
type PostgresAccountRepo struct {
	db *sql.DB
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db *sql.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// FindByEmail は指定メールアドレスのアカウントを取得する。見つからない場合はnilを返す。
// 重複行が存在する場合は最初に登録された行を返す。
func (r *PostgresAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, email, address, password, mobile_number
		 FROM accounts
		 WHERE email = $1
		 ORDER BY id
		 LIMIT 1`,
		email,
	).Scan(&account.Name, &account.Email, &account.Address, &account.Password, &account.MobileNumber)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}

	return account, nil
}

// FindByCredentials はメールアドレスとパスワードが完全一致するアカウントを取得する。
// 見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByCredentials(ctx context.Context, email, password string) (*model.Account, error) {
	account := &model.Account{}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, email, address, password, mobile_number
		 FROM accounts
		 WHERE email = $1 AND password = $2
		 ORDER BY id
		 LIMIT 1`,
		email, password,
	).Scan(&account.Name, &account.Email, &account.Address, &account.Password, &account.MobileNumber)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by credentials: %w", err)
	}

	return account, nil
}

// Create はアカウントを作成する。
func (r *PostgresAccountRepo) Create(ctx context.Context, account *model.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, email, address, password, mobile_number)
		 VALUES ($1, $2, $3, $4, $5)`,
		account.Name, account.Email, account.Address, account.Password, account.MobileNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// ListNamesByMobileNumber は携帯電話番号が一致する全アカウントの名前を登録順で返す。
func (r *PostgresAccountRepo) ListNamesByMobileNumber(ctx context.Context, mobileNumber string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM accounts WHERE mobile_number = $1 ORDER BY id`,
		mobileNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by mobile number: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan account name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	return names, nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
