package models

import (
	"time"

	"gorm.io/gorm"
)

// User ユーザーモデル
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Name      string         `json:"name" gorm:"not null"`
	Nickname  string         `json:"nickname" gorm:"not null"`
	Bio       string         `json:"bio"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// リレーション
	FavoriteItems []FavoriteItem `json:"-"`
}

// Item アイテムモデル
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null;index"`
	Metadata    JSONMap   `json:"metadata" gorm:"type:json"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// リレーション
	FavoriteItems []FavoriteItem `json:"-"`
}

// FavoriteItem お気に入りモデル（ユーザーとアイテムの中間テーブル）
type FavoriteItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_favorite_user_item"`
	ItemID    string    `json:"item_id" gorm:"not null;size:36;index:idx_favorite_user_item"`
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Item Item `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// ItemWithFavorite お気に入りフラグ付きアイテム（一覧レスポンス用）
type ItemWithFavorite struct {
	Item
	Favorited bool `json:"favorited"`
}

// ListItemsOptions アイテム一覧取得の検索条件
type ListItemsOptions struct {
	Limit          int
	Offset         int
	Sort           string // asc または desc
	SortBy         string // ソート対象のカラム名
	SearchCategory string // カテゴリの完全一致
	SearchTitle    string // タイトルの部分一致（大文字小文字を区別）
}
