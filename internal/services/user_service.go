package services

import (
	"strings"

	"github.com/ItemForge/itemforge_backend/internal/models"
	"github.com/ItemForge/itemforge_backend/internal/repository"
)

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, name, nickname, bio string) (*models.User, error)
	GetFavoriteItems(userID uint, page, limit int) ([]models.Item, int64, int, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository, itemRepo repository.ItemRepository) UserService {
	return &userService{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

// GetByID IDでユーザーを取得
func (s *userService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

// UpdateProfile ユーザープロフィールを更新
func (s *userService) UpdateProfile(userID uint, name, nickname, bio string) (*models.User, error) {
	// ユーザーを取得
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// フィールドを更新（空でない場合のみ）
	if strings.TrimSpace(name) != "" {
		user.Name = name
	}
	if strings.TrimSpace(nickname) != "" {
		user.Nickname = nickname
	}

	// bioはnullableなので空文字でも更新する
	user.Bio = bio

	// データベースを更新
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetFavoriteItems ユーザーがお気に入り登録したアイテム一覧を取得
func (s *userService) GetFavoriteItems(userID uint, page, limit int) ([]models.Item, int64, int, error) {
	// ユーザーが存在するか確認
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, 0, 0, err
	}

	// お気に入りアイテム一覧を取得
	items, total, err := s.itemRepo.ListFavoritesByUser(userID, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}

	// 総ページ数を計算
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}

	return items, total, pages, nil
}
