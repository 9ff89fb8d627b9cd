package domain

import (
	"slices"
	"sort"
)

// Category is one of the fixed retail labels a product is filed under.
type Category string

const (
	CategoryClothes     Category = "Habits"
	CategoryWigs        Category = "Perruques"
	CategoryExtensions  Category = "Greffes"
	CategoryLaceFrontal Category = "Lace Frontal"
	CategoryClosures    Category = "Closures"
	CategoryChains      Category = "Chains"
	CategoryUnderwear   Category = "Sous-vêtements"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryClothes,
	CategoryWigs,
	CategoryExtensions,
	CategoryLaceFrontal,
	CategoryClosures,
	CategoryChains,
	CategoryUnderwear,
}

func (c Category) Valid() bool { return slices.Contains(Categories, c) }

func (c Category) String() string { return string(c) }

// ParseCategory matches s exactly against the known categories.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// SortCategories orders cs by display order. Values outside the known set
// (rows written by older versions) go last, alphabetically.
func SortCategories(cs []Category) {
	rank := func(c Category) int {
		if i := slices.Index(Categories, c); i >= 0 {
			return i
		}
		return len(Categories)
	}
	sort.SliceStable(cs, func(i, j int) bool {
		ri, rj := rank(cs[i]), rank(cs[j])
		if ri != rj {
			return ri < rj
		}
		return cs[i] < cs[j]
	})
}
