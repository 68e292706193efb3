package routes

import (
	"github.com/ItemForge/itemforge_backend/internal/config"
	"github.com/ItemForge/itemforge_backend/internal/controllers"
	"github.com/ItemForge/itemforge_backend/internal/middlewares"
	"github.com/ItemForge/itemforge_backend/internal/repository"
	"github.com/ItemForge/itemforge_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	// サービスを作成
	authService := services.NewAuthService(userRepo, cfg)
	itemService := services.NewItemService(itemRepo)
	userService := services.NewUserService(userRepo, itemRepo)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService)
	itemController := controllers.NewItemController(itemService)
	userController := controllers.NewUserController(userService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(authService)

	// APIグループを作成
	api := r.Group("/api/v1")
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// 認証ルート
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/me", authMiddleware, authController.GetMe)
			auth.POST("/change-password", authMiddleware, authController.ChangePassword)
		}

		// アイテムルート
		items := api.Group("/items")
		{
			// 認証不要
			items.GET("", itemController.List)
			items.GET("/with-favorites", optionalAuthMiddleware, itemController.ListWithFavorites)
			items.GET("/:id", itemController.GetByID)

			// 認証が必要
			items.POST("", authMiddleware, itemController.Create)
			items.PUT("/:id", authMiddleware, itemController.Update)
			items.DELETE("/:id", authMiddleware, itemController.Delete)
			items.GET("/:id/favorited", authMiddleware, itemController.HasFavorited)
			items.POST("/:id/favorite", authMiddleware, itemController.Favorite)
			items.DELETE("/:id/favorite", authMiddleware, itemController.Unfavorite)
		}

		// ユーザールート
		users := api.Group("/users")
		{
			users.GET("/:id", userController.GetByID)
			users.GET("/favorites", authMiddleware, userController.GetFavorites)
			users.GET("/me", authMiddleware, userController.GetMe)
			users.PUT("/profile", authMiddleware, userController.UpdateProfile)
		}
	}

	return r
}
