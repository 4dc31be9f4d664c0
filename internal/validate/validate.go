// Package validate はアカウント入力値の形式チェックを提供する。
// すべて副作用のない全域関数で、エラーは返さない。
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// PasswordMinLength はパスワードに必要な最小文字数。
const PasswordMinLength = 7

// passwordSpecialChars はパスワードに最低1文字含める必要がある記号の集合。
const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var (
	// 空白と@以外の1文字以上 "@" 1文字以上 "." 1文字以上。RFC準拠ではない。
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 先頭に1個以上の "9"、続いてちょうど9桁の数字。
	// "9" が1個だけとは限らない緩いパターンをそのまま採用している。
	mobileNumberPattern = regexp.MustCompile(`^9+\d{9}$`)
)

// Email はメールアドレスの構文を検証する。
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password はパスワードが7文字以上かつ記号を1文字以上含むかを検証する。
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= PasswordMinLength &&
		strings.ContainsAny(s, passwordSpecialChars)
}

// MobileNumber は携帯電話番号の形式を検証する。
func MobileNumber(s string) bool {
	return mobileNumberPattern.MatchString(s)
}
