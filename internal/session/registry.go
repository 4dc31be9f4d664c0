// Package session はログイン中セッションのインメモリレジストリを提供する。
// セッションは永続化せず、有効期限も持たない。プロセス終了とともに消える。
package session

import (
	"sync"

	"github.com/hitoshi/accountapi/internal/model"
)

// Registry は(token, email)の組を登録順に保持する。
// 同一メールアドレスのセッションが複数存在してもよい。
type Registry struct {
	mu       sync.Mutex
	sessions []model.Session
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{}
}

// Create はセッションを末尾に追加する。重複は拒否しない。
func (r *Registry) Create(token, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = append(r.sessions, model.Session{Token: token, Email: email})
}

// RemoveByEmail は登録順で最初にemailが一致したセッションを削除して返す。
// 見つからない場合はnilを返す。
func (r *Registry) RemoveByEmail(email string) *model.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sessions {
		if s.Email != email {
			continue
		}
		r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
		return &s
	}
	return nil
}

// Len は現在のセッション数を返す。
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sessions は登録順のセッション一覧のコピーを返す。
func (r *Registry) Sessions() []model.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}
