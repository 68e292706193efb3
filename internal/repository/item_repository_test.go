package repository

import (
	"testing"
	"time"

	"github.com/ItemForge/itemforge_backend/internal/apperrors"
	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB テスト用のインメモリデータベースを作成
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("データベースのオープンに失敗しました: %v", err)
	}

	// インメモリDBは接続ごとに分かれるため接続数を1に固定する
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("SQLDBインスタンス取得に失敗しました: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// SQLiteのLIKEはデフォルトで大文字小文字を区別しない
	if err := db.Exec("PRAGMA case_sensitive_like = ON").Error; err != nil {
		t.Fatalf("PRAGMAの設定に失敗しました: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.FavoriteItem{}); err != nil {
		t.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	return db
}

// createTestItem テスト用のアイテムを作成
func createTestItem(t *testing.T, db *gorm.DB, title, category string, createdAt time.Time) *models.Item {
	t.Helper()

	item := &models.Item{
		ID:          utils.GenerateID(),
		Title:       title,
		Description: title + "の説明",
		Category:    category,
		Metadata:    models.JSONMap{},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("アイテムの作成に失敗しました: %v", err)
	}
	return item
}

// createTestUser テスト用のユーザーを作成
func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "hashed",
		Name:     "テストユーザー",
		Nickname: "test",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("ユーザーの作成に失敗しました: %v", err)
	}
	return user
}

func TestItemRepositoryCreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	item := &models.Item{
		ID:          utils.GenerateID(),
		Title:       "ノートパソコン",
		Description: "軽量なノートパソコン",
		Category:    "electronics",
		Metadata:    models.JSONMap{"color": "silver"},
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("Createに失敗しました: %v", err)
	}

	found, err := repo.FindByID(item.ID)
	if err != nil {
		t.Fatalf("FindByIDに失敗しました: %v", err)
	}
	if found.Title != "ノートパソコン" {
		t.Errorf("タイトルが一致しません: got %q", found.Title)
	}
	if found.Metadata["color"] != "silver" {
		t.Errorf("メタデータが一致しません: got %v", found.Metadata)
	}
}

func TestItemRepositoryFindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	_, err := repo.FindByID("missing-id")
	if !apperrors.IsNotFound(err) {
		t.Errorf("NotFoundエラーが返りませんでした: %v", err)
	}
}

func TestItemRepositoryListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createTestItem(t, db, "アイテム", "books", base.Add(time.Duration(i)*time.Hour))
	}

	items, total, err := repo.List(models.ListItemsOptions{
		Limit:  2,
		Offset: 2,
		Sort:   "asc",
		SortBy: "created_at",
	})
	if err != nil {
		t.Fatalf("Listに失敗しました: %v", err)
	}

	// 合計数はlimit/offsetに依存しない
	if total != 5 {
		t.Errorf("合計数が一致しません: got %d, want 5", total)
	}
	if len(items) != 2 {
		t.Errorf("件数が一致しません: got %d, want 2", len(items))
	}
}

func TestItemRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	now := time.Now()
	createTestItem(t, db, "Go言語入門", "books", now)
	createTestItem(t, db, "go言語実践", "books", now.Add(time.Minute))
	createTestItem(t, db, "キーボード", "electronics", now.Add(2*time.Minute))

	// カテゴリは完全一致
	items, total, err := repo.List(models.ListItemsOptions{
		Limit:          10,
		SearchCategory: "books",
	})
	if err != nil {
		t.Fatalf("Listに失敗しました: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("カテゴリ検索の結果が一致しません: total=%d, len=%d", total, len(items))
	}

	// タイトルは部分一致（大文字小文字を区別する）
	items, total, err = repo.List(models.ListItemsOptions{
		Limit:       10,
		SearchTitle: "Go",
	})
	if err != nil {
		t.Fatalf("Listに失敗しました: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("タイトル検索の結果が一致しません: total=%d, len=%d", total, len(items))
	}
	if items[0].Title != "Go言語入門" {
		t.Errorf("タイトルが一致しません: got %q", items[0].Title)
	}
}

func TestItemRepositoryListSortOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	createTestItem(t, db, "bbb", "books", base)
	createTestItem(t, db, "aaa", "books", base.Add(time.Hour))
	createTestItem(t, db, "ccc", "books", base.Add(2*time.Hour))

	// デフォルトは作成日時の降順
	items, _, err := repo.List(models.ListItemsOptions{Limit: 10, Sort: "desc", SortBy: "created_at"})
	if err != nil {
		t.Fatalf("Listに失敗しました: %v", err)
	}
	if items[0].Title != "ccc" || items[2].Title != "bbb" {
		t.Errorf("作成日時の降順になっていません: %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}

	// タイトルの昇順
	items, _, err = repo.List(models.ListItemsOptions{Limit: 10, Sort: "asc", SortBy: "title"})
	if err != nil {
		t.Fatalf("Listに失敗しました: %v", err)
	}
	if items[0].Title != "aaa" || items[2].Title != "ccc" {
		t.Errorf("タイトルの昇順になっていません: %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}
}

func TestItemRepositoryListWithFavorites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	user := createTestUser(t, db, "user@example.com")
	other := createTestUser(t, db, "other@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	item1 := createTestItem(t, db, "アイテム1", "books", base)
	item2 := createTestItem(t, db, "アイテム2", "books", base.Add(time.Hour))

	// userはitem1を、otherはitem2をお気に入り登録
	if _, err := repo.AddFavorite(user.ID, item1.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}
	if _, err := repo.AddFavorite(other.ID, item2.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}

	opts := models.ListItemsOptions{Limit: 10, Sort: "asc", SortBy: "created_at"}

	// userから見るとitem1のみfavorited
	items, total, err := repo.ListWithFavorites(opts, &user.ID)
	if err != nil {
		t.Fatalf("ListWithFavoritesに失敗しました: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("件数が一致しません: total=%d, len=%d", total, len(items))
	}
	if !items[0].Favorited {
		t.Errorf("item1のfavoritedがfalseになっています")
	}
	if items[1].Favorited {
		t.Errorf("item2のfavoritedがtrueになっています（他ユーザーのお気に入りを拾っています）")
	}
	if items[0].ID != item1.ID || items[1].ID != item2.ID {
		t.Errorf("並び順が一致しません: %q, %q", items[0].ID, items[1].ID)
	}

	// 未ログインの場合はすべてfalse
	items, _, err = repo.ListWithFavorites(opts, nil)
	if err != nil {
		t.Fatalf("ListWithFavoritesに失敗しました: %v", err)
	}
	for _, it := range items {
		if it.Favorited {
			t.Errorf("未ログインでfavoritedがtrueになっています: %q", it.Title)
		}
	}
}

func TestItemRepositoryAddFavorite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	user := createTestUser(t, db, "user@example.com")
	item := createTestItem(t, db, "アイテム", "books", time.Now())

	// 存在しないアイテムはNotFound
	if _, err := repo.AddFavorite(user.ID, "missing-id"); !apperrors.IsNotFound(err) {
		t.Errorf("NotFoundエラーが返りませんでした: %v", err)
	}

	if _, err := repo.AddFavorite(user.ID, item.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}

	// 重複登録はConflict
	_, err := repo.AddFavorite(user.ID, item.ID)
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("Conflictエラーが返りませんでした: %v", err)
	}

	favorited, err := repo.HasFavorited(user.ID, item.ID)
	if err != nil {
		t.Fatalf("HasFavoritedに失敗しました: %v", err)
	}
	if !favorited {
		t.Errorf("favoritedがfalseになっています")
	}
}

func TestItemRepositoryRemoveFavorite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	user := createTestUser(t, db, "user@example.com")
	item := createTestItem(t, db, "アイテム", "books", time.Now())

	// 未登録の削除はNotFound
	if err := repo.RemoveFavorite(user.ID, item.ID); !apperrors.IsNotFound(err) {
		t.Errorf("NotFoundエラーが返りませんでした: %v", err)
	}

	if _, err := repo.AddFavorite(user.ID, item.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}
	if err := repo.RemoveFavorite(user.ID, item.ID); err != nil {
		t.Fatalf("RemoveFavoriteに失敗しました: %v", err)
	}

	favorited, err := repo.HasFavorited(user.ID, item.ID)
	if err != nil {
		t.Fatalf("HasFavoritedに失敗しました: %v", err)
	}
	if favorited {
		t.Errorf("削除後もfavoritedがtrueになっています")
	}
}

func TestItemRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	item := createTestItem(t, db, "アイテム", "books", time.Now())

	if err := repo.Delete(item.ID); err != nil {
		t.Fatalf("Deleteに失敗しました: %v", err)
	}
	if _, err := repo.FindByID(item.ID); !apperrors.IsNotFound(err) {
		t.Errorf("削除後にNotFoundエラーが返りませんでした: %v", err)
	}

	// 存在しないアイテムの削除はNotFound
	if err := repo.Delete("missing-id"); !apperrors.IsNotFound(err) {
		t.Errorf("NotFoundエラーが返りませんでした: %v", err)
	}
}

func TestItemRepositoryListFavoritesByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	user := createTestUser(t, db, "user@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	item1 := createTestItem(t, db, "アイテム1", "books", base)
	item2 := createTestItem(t, db, "アイテム2", "books", base)
	createTestItem(t, db, "アイテム3", "books", base)

	if _, err := repo.AddFavorite(user.ID, item1.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}
	if _, err := repo.AddFavorite(user.ID, item2.ID); err != nil {
		t.Fatalf("AddFavoriteに失敗しました: %v", err)
	}

	items, total, err := repo.ListFavoritesByUser(user.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListFavoritesByUserに失敗しました: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("件数が一致しません: total=%d, len=%d", total, len(items))
	}
}
