package controllers

import (
	"net/http"
	"strconv"

	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService services.UserService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetByID IDでユーザーを取得
func (c *UserController) GetByID(ctx *gin.Context) {
	// IDを解析
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return
	}

	// ユーザーを取得
	user, err := c.userService.GetByID(uint(id))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// GetMe 自分のユーザー情報を取得
func (c *UserController) GetMe(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile 自分のプロフィールを更新
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// リクエストをバインド
	var req struct {
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		Bio      string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// プロフィールを更新
	updatedUser, err := c.userService.UpdateProfile(u.ID, req.Name, req.Nickname, req.Bio)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updatedUser)
}

// GetFavorites 自分がお気に入り登録したアイテム一覧を取得
func (c *UserController) GetFavorites(ctx *gin.Context) {
	// ユーザー情報を取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// ページネーションパラメータを解析
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	// お気に入りアイテム一覧を取得
	items, total, pages, err := c.userService.GetFavoriteItems(u.ID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if items == nil {
		items = []models.Item{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"pages": pages,
		"page":  page,
	})
}
