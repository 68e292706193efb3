package controllers

import (
	"net/http"

	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ItemController アイテムに関するコントローラー
type ItemController struct {
	itemService services.ItemService
}

// NewItemController ItemControllerを作成
func NewItemController(itemService services.ItemService) *ItemController {
	return &ItemController{
		itemService: itemService,
	}
}

// ListItemsRequest アイテム一覧取得リクエスト
// limitは1〜100、offsetは0以上のみ許可し、範囲外はバインド時に拒否する
type ListItemsRequest struct {
	Limit          int    `form:"limit,default=10" binding:"min=1,max=100"`
	Offset         int    `form:"offset,default=0" binding:"min=0"`
	Sort           string `form:"sort,default=desc" binding:"oneof=asc desc"`
	SortBy         string `form:"sort_by,default=created_at" binding:"oneof=id title description category metadata created_at updated_at"`
	SearchCategory string `form:"search_category"`
	SearchTitle    string `form:"search_title"`
}

// CreateItemRequest アイテム作成リクエスト
type CreateItemRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Category    string         `json:"category"`
	Metadata    models.JSONMap `json:"metadata"`
}

// UpdateItemRequest アイテム更新リクエスト
// nilのフィールドは変更しない
type UpdateItemRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1"`
	Description *string        `json:"description" binding:"omitempty,min=1"`
	Category    *string        `json:"category"`
	Metadata    models.JSONMap `json:"metadata"`
}

// listOptions リクエストを検索条件に変換する
func (req *ListItemsRequest) listOptions() models.ListItemsOptions {
	return models.ListItemsOptions{
		Limit:          req.Limit,
		Offset:         req.Offset,
		Sort:           req.Sort,
		SortBy:         req.SortBy,
		SearchCategory: req.SearchCategory,
		SearchTitle:    req.SearchTitle,
	}
}

// List アイテム一覧を取得
func (c *ItemController) List(ctx *gin.Context) {
	// クエリパラメータをバインド
	var req ListItemsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// アイテム一覧を取得
	items, count, err := c.itemService.List(req.listOptions())
	if err != nil {
		respondError(ctx, err)
		return
	}

	if items == nil {
		items = []models.Item{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": count,
	})
}

// ListWithFavorites お気に入りフラグ付きのアイテム一覧を取得
// 未ログインでも利用でき、その場合はすべてのfavoritedがfalseになる
func (c *ItemController) ListWithFavorites(ctx *gin.Context) {
	// クエリパラメータをバインド
	var req ListItemsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// ログイン中ならユーザーIDを取得（オプショナル認証）
	var userID *uint
	if user, exists := ctx.Get("user"); exists {
		u := user.(*models.User)
		userID = &u.ID
	}

	// アイテム一覧を取得
	items, count, err := c.itemService.ListWithFavorites(req.listOptions(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if items == nil {
		items = []models.ItemWithFavorite{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": count,
	})
}

// GetByID IDでアイテムを取得
func (c *ItemController) GetByID(ctx *gin.Context) {
	item, err := c.itemService.GetByID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Create 新しいアイテムを作成
func (c *ItemController) Create(ctx *gin.Context) {
	// リクエストをバインド
	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// アイテムを作成
	item, err := c.itemService.Create(req.Title, req.Description, req.Category, req.Metadata)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update アイテムを更新（部分更新）
func (c *ItemController) Update(ctx *gin.Context) {
	// リクエストをバインド
	var req UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// アイテムを更新
	item, err := c.itemService.Update(ctx.Param("id"), services.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Delete アイテムを削除
// 削除したアイテムを返す
func (c *ItemController) Delete(ctx *gin.Context) {
	item, err := c.itemService.Delete(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Favorite アイテムをお気に入りに追加
func (c *ItemController) Favorite(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// お気に入りを追加
	if err := c.itemService.Favorite(u.ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Unfavorite アイテムをお気に入りから削除
func (c *ItemController) Unfavorite(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// お気に入りを削除
	if err := c.itemService.Unfavorite(u.ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// HasFavorited ユーザーがお気に入り登録しているか確認
func (c *ItemController) HasFavorited(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// お気に入り状態を確認
	favorited, err := c.itemService.HasFavorited(u.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorited": favorited})
}
