package controllers

import (
	"net/http"

	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthController 認証に関するコントローラー
type AuthController struct {
	authService services.AuthService
}

// NewAuthController AuthControllerを作成
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterRequest ユーザー登録リクエスト
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordChangeRequest パスワード変更リクエスト
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// AuthResponse 認証レスポンス
type AuthResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register ユーザー登録
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.Register(req.Email, req.Password, req.Name, req.Nickname)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, AuthResponse{
		User:  user,
		Token: token,
	})
}

// Login ログイン
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		User:  user,
		Token: token,
	})
}

// GetMe 現在のユーザー情報を取得
func (c *AuthController) GetMe(ctx *gin.Context) {
	// コンテキストからユーザーを取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// ChangePassword パスワードを変更
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	// ユーザーを取得
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// リクエストをバインド
	var req PasswordChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// パスワードを変更
	if err := c.authService.ChangePassword(u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "パスワードが正常に変更されました"})
}
