package database

import (
	"context"
	"errors"
	"fmt"

	"recipe-forge/internal/core/recipe"

	"gorm.io/gorm"
)

// RecipeRepository 以 gorm 實作的食譜儲存
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 創建食譜儲存
func NewRecipeRepository(db *DB) *RecipeRepository {
	return &RecipeRepository{db: db.DB}
}

var _ recipe.Repository = (*RecipeRepository)(nil)

// Create 寫入食譜；欄位驗證由 Record.BeforeSave 執行
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// FindAll 依建立時間新到舊
func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Record, error) {
	records := []recipe.Record{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return records, nil
}

// FindByID 依 ID 查詢
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Record, error) {
	var rec recipe.Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &rec, nil
}
