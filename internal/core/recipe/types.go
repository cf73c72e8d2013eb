package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound 食譜不存在
var ErrNotFound = errors.New("recipe not found")

// 預設值
const (
	DefaultServings    = 4
	DefaultCookingTime = 30
)

// Difficulty 難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid 檢查是否為合法難度
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DietaryTag 飲食標籤
type DietaryTag string

const (
	TagVegetarian DietaryTag = "Vegetarian"
	TagVegan      DietaryTag = "Vegan"
	TagGlutenFree DietaryTag = "Gluten-Free"
	TagDairyFree  DietaryTag = "Dairy-Free"
	TagKeto       DietaryTag = "Keto"
	TagPaleo      DietaryTag = "Paleo"
)

// AllDietaryTags 所有允許的飲食標籤
var AllDietaryTags = []DietaryTag{TagVegetarian, TagVegan, TagGlutenFree, TagDairyFree, TagKeto, TagPaleo}

// Valid 檢查是否為允許的飲食標籤
func (t DietaryTag) Valid() bool {
	for _, tag := range AllDietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Nutrition 每人份營養資訊
type Nutrition struct {
	Calories      float64 `json:"calories" gorm:"column:calories"`
	Protein       float64 `json:"protein" gorm:"column:protein"`
	Carbohydrates float64 `json:"carbohydrates" gorm:"column:carbohydrates"`
	Fat           float64 `json:"fat" gorm:"column:fat"`
}

// StringList 以 JSON 陣列存放在單一欄位的字串列表
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(bytes, l)
}

// TagList 飲食標籤列表
type TagList []DietaryTag

// Value implements the driver.Valuer interface
func (l TagList) Value() (driver.Value, error) {
	strs := make(StringList, len(l))
	for i, t := range l {
		strs[i] = string(t)
	}
	return strs.Value()
}

// Scan implements the sql.Scanner interface
func (l *TagList) Scan(value interface{}) error {
	var strs StringList
	if err := strs.Scan(value); err != nil {
		return err
	}
	tags := make(TagList, len(strs))
	for i, s := range strs {
		tags[i] = DietaryTag(s)
	}
	*l = tags
	return nil
}

// Strings 轉為字串切片
func (l TagList) Strings() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = string(t)
	}
	return out
}

// Record 持久化的食譜
type Record struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Title           string     `json:"title" gorm:"size:255;not null"`
	Ingredients     StringList `json:"ingredients" gorm:"type:text;not null"`
	Instructions    StringList `json:"instructions" gorm:"type:text;not null"`
	CookingTime     int        `json:"cookingTime" gorm:"not null"`
	Difficulty      Difficulty `json:"difficulty" gorm:"size:16;not null;default:Medium"`
	Servings        int        `json:"servings" gorm:"not null;default:4"`
	NutritionalInfo Nutrition  `json:"nutritionalInfo" gorm:"embedded;embeddedPrefix:nutrition_"`
	DietaryTags     TagList    `json:"dietaryTags" gorm:"type:text"`
	ImageURL        string     `json:"imageUrl" gorm:"size:1024"`
	CreatedAt       time.Time  `json:"createdAt" gorm:"index"`
}

// TableName 資料表名稱
func (Record) TableName() string {
	return "recipes"
}

// MarshalJSON 額外輸出 _id，與既有前端的欄位相容
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	return json.Marshal(struct {
		MongoID string `json:"_id,omitempty"`
		alias
	}{
		MongoID: r.ID,
		alias:   alias(r),
	})
}

// Validate 檢查必要欄位與列舉值
func (r *Record) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if len(r.Ingredients) == 0 {
		return errors.New("ingredients are required")
	}
	if len(r.Instructions) == 0 {
		return errors.New("instructions are required")
	}
	if r.CookingTime <= 0 {
		return errors.New("cooking time must be positive")
	}
	if !r.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", r.Difficulty)
	}
	if r.Servings < 1 {
		return errors.New("servings must be at least 1")
	}
	for _, tag := range r.DietaryTags {
		if !tag.Valid() {
			return fmt.Errorf("invalid dietary tag %q", tag)
		}
	}
	n := r.NutritionalInfo
	if n.Calories < 0 || n.Protein < 0 || n.Carbohydrates < 0 || n.Fat < 0 {
		return errors.New("nutritional values must be non-negative")
	}
	return nil
}

// BeforeSave gorm 寫入前的驗證 hook
func (r *Record) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// Clone 深拷貝，縮放等衍生操作不修改原始紀錄
func (r Record) Clone() Record {
	out := r
	out.Ingredients = append(make(StringList, 0, len(r.Ingredients)), r.Ingredients...)
	out.Instructions = append(make(StringList, 0, len(r.Instructions)), r.Instructions...)
	out.DietaryTags = append(make(TagList, 0, len(r.DietaryTags)), r.DietaryTags...)
	return out
}

// GenerateInput 食譜生成參數
type GenerateInput struct {
	Ingredients []string
	Dietary     []DietaryTag
	Servings    int
}

// DietaryText 飲食限制的顯示文字
func (in GenerateInput) DietaryText() string {
	return joinTags(in.Dietary, ", ")
}

// servingsOrDefault 份數小於 1 時使用預設值
func servingsOrDefault(servings int) int {
	if servings < 1 {
		return DefaultServings
	}
	return servings
}

func joinTags(tags []DietaryTag, sep string) string {
	return strings.Join(TagList(tags).Strings(), sep)
}
