package services

import (
	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/repository"
	"github.com/ItemForge/itemforge_backend/internal/utils"
)

// UpdateItemInput アイテム更新の入力
// nilのフィールドは変更しない（部分更新）
type UpdateItemInput struct {
	Title       *string
	Description *string
	Category    *string
	Metadata    models.JSONMap
}

// ItemService アイテムに関するサービスインターフェース
type ItemService interface {
	List(opts models.ListItemsOptions) ([]models.Item, int64, error)
	ListWithFavorites(opts models.ListItemsOptions, userID *uint) ([]models.ItemWithFavorite, int64, error)
	GetByID(id string) (*models.Item, error)
	Create(title, description, category string, metadata models.JSONMap) (*models.Item, error)
	Update(id string, input UpdateItemInput) (*models.Item, error)
	Delete(id string) (*models.Item, error)
	Favorite(userID uint, itemID string) error
	Unfavorite(userID uint, itemID string) error
	HasFavorited(userID uint, itemID string) (bool, error)
}

// itemService ItemServiceの実装
type itemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService ItemServiceを作成
func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

// List アイテム一覧を取得
func (s *itemService) List(opts models.ListItemsOptions) ([]models.Item, int64, error) {
	return s.itemRepo.List(opts)
}

// ListWithFavorites お気に入りフラグ付きのアイテム一覧を取得
// userIDがnil（未ログイン）の場合はすべてのfavoritedがfalseになる
func (s *itemService) ListWithFavorites(opts models.ListItemsOptions, userID *uint) ([]models.ItemWithFavorite, int64, error) {
	return s.itemRepo.ListWithFavorites(opts, userID)
}

// GetByID IDでアイテムを取得
func (s *itemService) GetByID(id string) (*models.Item, error) {
	return s.itemRepo.FindByID(id)
}

// Create 新しいアイテムを作成
// IDと作成・更新日時はサーバー側で生成する
func (s *itemService) Create(title, description, category string, metadata models.JSONMap) (*models.Item, error) {
	if metadata == nil {
		metadata = models.JSONMap{}
	}

	item := &models.Item{
		ID:          utils.GenerateID(),
		Title:       title,
		Description: description,
		Category:    category,
		Metadata:    metadata,
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	// 保存されたアイテムを再取得
	return s.itemRepo.FindByID(item.ID)
}

// Update アイテムを更新
// 指定されたフィールドのみを変更し、updated_atは常に更新する
func (s *itemService) Update(id string, input UpdateItemInput) (*models.Item, error) {
	// アイテムを取得
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// 指定されたフィールドのみ更新
	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Metadata != nil {
		item.Metadata = input.Metadata
	}

	// データベースを更新
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete アイテムを削除
// 削除したアイテムを返す
func (s *itemService) Delete(id string) (*models.Item, error) {
	// アイテムを取得
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// データベースから削除
	if err := s.itemRepo.Delete(id); err != nil {
		return nil, err
	}

	return item, nil
}

// Favorite アイテムをお気に入りに追加
func (s *itemService) Favorite(userID uint, itemID string) error {
	_, err := s.itemRepo.AddFavorite(userID, itemID)
	return err
}

// Unfavorite アイテムをお気に入りから削除
func (s *itemService) Unfavorite(userID uint, itemID string) error {
	return s.itemRepo.RemoveFavorite(userID, itemID)
}

// HasFavorited ユーザーがお気に入り登録しているか確認
func (s *itemService) HasFavorited(userID uint, itemID string) (bool, error) {
	return s.itemRepo.HasFavorited(userID, itemID)
}
