package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of community board categories.
type Category string

const (
	CategoryQnA        Category = "QNA"
	CategoryRecommend  Category = "RECOMMEND"
	CategorySecondhand Category = "SECONDHAND"
	CategoryFree       Category = "FREE"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryQnA,
	CategoryRecommend,
	CategorySecondhand,
	CategoryFree,
}

// Label returns the Korean display label shown on the board tabs.
func (c Category) Label() string {
	switch c {
	case CategoryQnA:
		return "질문/답변"
	case CategoryRecommend:
		return "추천"
	case CategorySecondhand:
		return "중고거래"
	case CategoryFree:
		return "자유게시판"
	}
	return ""
}

// CategoryInfo pairs a wire value with its board tab label.
type CategoryInfo struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

// CategoryTabs returns every category with its label in display order.
func CategoryTabs() []CategoryInfo {
	tabs := make([]CategoryInfo, len(AllCategories))
	for i, c := range AllCategories {
		tabs[i] = CategoryInfo{Value: c, Label: c.Label()}
	}
	return tabs
}

// Valid reports whether c is one of AllCategories.
func (c Category) Valid() bool {
	return c.Label() != ""
}

// ParseCategory accepts the wire value case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
