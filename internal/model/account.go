// Package model はドメインモデルを定義する。
package model

// Account は登録済みユーザーのアカウントを表す。
// Emailを自然キーとして扱う。一意性はアプリケーション層の事前検索で保証し、DB制約には依存しない。
type Account struct {
	Name         string
	Email        string
	Address      string
	Password     string // 平文のまま保存・比較する
	MobileNumber string
}

// Session はログイン中の状態を表すトークンとメールアドレスの組。
// プロセスメモリ上にのみ保持し、有効期限は持たない。
type Session struct {
	Token string
	Email string
}
