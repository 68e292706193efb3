package repository

import (
	"errors"

	"github.com/ItemForge/itemforge_backend/internal/apperrors"
	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/utils"

	"gorm.io/gorm"
)

// ItemRepository アイテムに関するデータベース操作を行うインターフェース
type ItemRepository interface {
	Create(item *models.Item) error
	FindByID(id string) (*models.Item, error)
	Update(item *models.Item) error
	Delete(id string) error
	List(opts models.ListItemsOptions) ([]models.Item, int64, error)
	ListWithFavorites(opts models.ListItemsOptions, userID *uint) ([]models.ItemWithFavorite, int64, error)
	AddFavorite(userID uint, itemID string) (*models.FavoriteItem, error)
	RemoveFavorite(userID uint, itemID string) error
	HasFavorited(userID uint, itemID string) (bool, error)
	ListFavoritesByUser(userID uint, page, limit int) ([]models.Item, int64, error)
}

// itemRepository ItemRepositoryの実装
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository ItemRepositoryを作成
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// sortableColumns ソートに使用できるカラム
// 任意の文字列をORDER BY句に渡さないためのホワイトリスト
var sortableColumns = map[string]string{
	"id":          "items.id",
	"title":       "items.title",
	"description": "items.description",
	"category":    "items.category",
	"metadata":    "items.metadata",
	"created_at":  "items.created_at",
	"updated_at":  "items.updated_at",
}

// applyFilters 検索条件をクエリに適用する
// 一覧クエリと件数クエリの両方で同じ条件を使う
func applyFilters(query *gorm.DB, opts models.ListItemsOptions) *gorm.DB {
	if opts.SearchCategory != "" {
		query = query.Where("items.category = ?", opts.SearchCategory)
	}
	if opts.SearchTitle != "" {
		query = query.Where("items.title LIKE ?", "%"+opts.SearchTitle+"%")
	}
	return query
}

// orderClause ソート順のORDER BY句を組み立てる
func orderClause(opts models.ListItemsOptions) string {
	column, ok := sortableColumns[opts.SortBy]
	if !ok {
		column = "items.created_at"
	}
	if opts.Sort == "asc" {
		return column + " ASC"
	}
	return column + " DESC"
}

// Create 新しいアイテムを作成
func (r *itemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// FindByID IDでアイテムを検索
func (r *itemRepository) FindByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("アイテムが見つかりません")
		}
		return nil, err
	}
	return &item, nil
}

// Update アイテム情報を更新
func (r *itemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

// Delete アイテムを削除
func (r *itemRepository) Delete(id string) error {
	result := r.db.Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("アイテムが見つかりません")
	}
	return nil
}

// List アイテム一覧を取得
// 合計数は検索条件のみを反映し、limit/offsetには依存しない
func (r *itemRepository) List(opts models.ListItemsOptions) ([]models.Item, int64, error) {
	var items []models.Item
	var total int64

	query := applyFilters(r.db.Model(&models.Item{}), opts)

	// 合計数を取得
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// データを取得
	if err := query.
		Order(orderClause(opts)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListWithFavorites お気に入りフラグ付きのアイテム一覧を取得
// userIDがnilの場合は結合条件が成立しないため、favoritedは常にfalseになる
func (r *itemRepository) ListWithFavorites(opts models.ListItemsOptions, userID *uint) ([]models.ItemWithFavorite, int64, error) {
	var items []models.ItemWithFavorite
	var total int64

	// 合計数はお気に入りの結合に依存しない
	if err := applyFilters(r.db.Model(&models.Item{}), opts).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// データを取得
	query := applyFilters(r.db.Model(&models.Item{}), opts).
		Select("items.*, favorite_items.id IS NOT NULL AS favorited").
		Joins("LEFT JOIN favorite_items ON favorite_items.item_id = items.id AND favorite_items.user_id = ?", userID)

	if err := query.
		Order(orderClause(opts)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// AddFavorite お気に入りを追加
func (r *itemRepository) AddFavorite(userID uint, itemID string) (*models.FavoriteItem, error) {
	// アイテムの存在確認
	var item models.Item
	if err := r.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("アイテムが見つかりません")
		}
		return nil, err
	}

	// 既にお気に入り登録済みか確認
	var count int64
	if err := r.db.Model(&models.FavoriteItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("既にお気に入りに登録されています")
	}

	// お気に入りを作成
	favorite := &models.FavoriteItem{
		ID:     utils.GenerateID(),
		UserID: userID,
		ItemID: itemID,
	}
	if err := r.db.Create(favorite).Error; err != nil {
		return nil, err
	}

	return favorite, nil
}

// RemoveFavorite お気に入りを削除
func (r *itemRepository) RemoveFavorite(userID uint, itemID string) error {
	result := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.FavoriteItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("お気に入りが見つかりません")
	}
	return nil
}

// HasFavorited ユーザーがお気に入り登録しているか確認
func (r *itemRepository) HasFavorited(userID uint, itemID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.FavoriteItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFavoritesByUser ユーザーがお気に入り登録したアイテム一覧を取得
func (r *itemRepository) ListFavoritesByUser(userID uint, page, limit int) ([]models.Item, int64, error) {
	var items []models.Item
	var total int64

	offset := (page - 1) * limit

	query := r.db.Model(&models.Item{}).
		Joins("JOIN favorite_items ON favorite_items.item_id = items.id").
		Where("favorite_items.user_id = ?", userID)

	// 合計数を取得
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// データを取得（お気に入り登録の新しい順）
	if err := query.
		Order("favorite_items.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
