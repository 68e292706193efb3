package controllers

import (
	"log"
	"net/http"

	"github.com/ItemForge/itemforge_backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError エラー種別に応じたHTTPステータスでエラーレスポンスを返す
// ドメインエラーはメッセージをそのまま返し、予期しないエラーは
// 詳細をログにのみ残して汎用メッセージを返す
func respondError(ctx *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindUnauthorized:
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.KindValidation:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindConflict:
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("内部エラー: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
	}
}
