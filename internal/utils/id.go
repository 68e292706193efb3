package utils

import "github.com/google/uuid"

// GenerateID 一意なIDを生成する
// アイテムとお気に入りの主キーに使用する
func GenerateID() string {
	return uuid.NewString()
}
