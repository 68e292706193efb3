package apperrors

import (
	"errors"
	"fmt"
)

// Kind エラーの種別
type Kind int

const (
	// KindInternal 予期しない内部エラー
	KindInternal Kind = iota
	// KindNotFound 対象のエンティティが存在しない
	KindNotFound
	// KindUnauthorized 認証されていない
	KindUnauthorized
	// KindValidation 入力値が不正
	KindValidation
	// KindConflict 状態の競合（重複登録など）
	KindConflict
)

// Error 種別付きアプリケーションエラー
// ドメインエラー（NotFoundなど）はそのままクライアントに返し、
// それ以外は内部エラーとして元のエラーをラップして保持する
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error エラーメッセージを返す
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap ラップされた元のエラーを返す
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound NotFoundエラーを作成
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized 認証エラーを作成
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Validation バリデーションエラーを作成
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict 競合エラーを作成
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal 内部エラーを作成（元のエラーを保持する）
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf エラーの種別を判定する
// アプリケーションエラーでない場合はKindInternalを返す
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound NotFoundエラーかどうかを判定
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Wrap ドメインエラーはそのまま、それ以外は内部エラーとしてラップする
func Wrap(err error, message string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(message, err)
}
