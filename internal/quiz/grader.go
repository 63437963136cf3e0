package quiz

import "strings"

// Grade は回答を採点します。前後の空白を除き、大文字小文字を区別せずに比較します。
// アクセント記号の正規化や表記ゆれの許容はしません。
func Grade(submitted, expected string) (bool, error) {
	s := strings.TrimSpace(submitted)
	if s == "" {
		return false, ErrEmptyAnswer
	}
	return strings.EqualFold(s, strings.TrimSpace(expected)), nil
}
