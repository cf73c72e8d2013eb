package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipe-forge/internal/pkg/common"

	"go.uber.org/zap"
)

// Repository 食譜持久化
type Repository interface {
	Create(ctx context.Context, r *Record) error
	// FindAll 依建立時間新到舊
	FindAll(ctx context.Context) ([]Record, error)
	// FindByID 不存在時回傳 ErrNotFound
	FindByID(ctx context.Context, id string) (*Record, error)
}

// Generator 外部文字生成
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RecipeService 食譜服務
// --------------------------------------------------
type RecipeService struct {
	repo         Repository
	generator    Generator
	imageBaseURL string
	now          func() time.Time
}

// NewRecipeService 創建新的食譜服務；generator 為 nil 時一律使用規則產生
func NewRecipeService(repo Repository, generator Generator, imageBaseURL string) *RecipeService {
	return &RecipeService{
		repo:         repo,
		generator:    generator,
		imageBaseURL: imageBaseURL,
		now:          time.Now,
	}
}

// Generate 產生並儲存一份新食譜
//
// 外部生成失敗或回傳空白時改用 Synthesize，不會讓請求失敗。
func (s *RecipeService) Generate(ctx context.Context, in GenerateInput) (*Record, error) {
	ingredients, err := CleanIngredients(in.Ingredients)
	if err != nil {
		return nil, err
	}
	in.Ingredients = ingredients
	in.Servings = servingsOrDefault(in.Servings)

	rec := s.compose(ctx, in)
	rec.ID = common.GenerateUUID()
	rec.CreatedAt = s.now().UTC()
	rec.ImageURL = s.imageBaseURL + strings.Join(ingredients, ",")

	if err := s.repo.Create(ctx, &rec); err != nil {
		common.LogError("儲存食譜失敗", zap.Error(err), zap.String("title", rec.Title))
		return nil, common.ErrGenerateFailed.Wrap(err)
	}

	common.LogInfo("食譜已生成",
		zap.String("id", rec.ID),
		zap.String("title", rec.Title),
		zap.Int("ingredients", len(rec.Ingredients)),
	)
	return &rec, nil
}

// compose 呼叫外部生成並解析；任何失敗都退回規則產生
func (s *RecipeService) compose(ctx context.Context, in GenerateInput) Record {
	if s.generator == nil {
		return Synthesize(in)
	}

	text, err := s.generator.Complete(ctx, BuildPrompt(in))
	if err != nil {
		common.LogWarn("AI 生成失敗，改用備用食譜", zap.Error(err))
		return Synthesize(in)
	}
	if strings.TrimSpace(text) == "" {
		common.LogWarn("AI 回傳空白內容，改用備用食譜")
		return Synthesize(in)
	}

	return Normalize(text, in)
}

// List 所有食譜，新的在前
func (s *RecipeService) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, common.ErrProcessFailed.Wrap(err)
	}
	return records, nil
}

// Get 依 ID 取得食譜
func (s *RecipeService) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.ErrNotFound.Wrap(err)
		}
		return nil, common.ErrProcessFailed.Wrap(err)
	}
	return rec, nil
}

// Scale 回傳依新份數縮放的副本，不修改已儲存的食譜
func (s *RecipeService) Scale(ctx context.Context, id string, newServings int) (*Record, error) {
	if newServings < 1 {
		return nil, common.NewValidationError("Servings must be at least 1")
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	scaled := ScaleRecord(*rec, newServings)
	return &scaled, nil
}

// ScaleRecord 以 newServings/servings 為倍率縮放食材與營養
func ScaleRecord(r Record, newServings int) Record {
	out := r.Clone()
	oldServings := servingsOrDefault(r.Servings)
	factor := float64(newServings) / float64(oldServings)

	out.Ingredients = ScaleIngredients(r.Ingredients, factor)
	out.NutritionalInfo = ScaleNutrition(r.NutritionalInfo, factor)
	out.Servings = newServings
	return out
}
