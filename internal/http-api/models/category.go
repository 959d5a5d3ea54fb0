package models

// Category discriminates the five entry tables. Association, comment and
// review rows reference entries as (entry_type, entry_id) pairs instead of
// one nullable foreign key per table.
type Category string

const (
	CategoryGame     Category = "game"
	CategoryHardware Category = "hardware"
	CategoryPlace    Category = "place"
	CategorySoftware Category = "software"
	CategoryService  Category = "service"
)

// AllCategories returns the categories in a stable order.
func AllCategories() []Category {
	return []Category{CategoryGame, CategoryHardware, CategoryPlace, CategorySoftware, CategoryService}
}

// ParseCategory validates a category literal from a URL or payload.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryGame, CategoryHardware, CategoryPlace, CategorySoftware, CategoryService:
		return Category(s), true
	default:
		return "", false
	}
}

// TableName returns the physical table backing the category.
func (c Category) TableName() string {
	switch c {
	case CategoryGame:
		return "games"
	case CategoryHardware:
		return "hardware"
	case CategoryPlace:
		return "places"
	case CategorySoftware:
		return "software"
	case CategoryService:
		return "services"
	}
	return ""
}

// EntryRef identifies exactly one entry across the five category tables.
type EntryRef struct {
	Category Category `json:"entry_type"`
	ID       int64    `json:"entry_id"`
}

// NewEntry returns an empty model for the category, for the repository to
// scan rows into.
func NewEntry(c Category) Entry {
	switch c {
	case CategoryGame:
		return &Game{}
	case CategoryHardware:
		return &Hardware{}
	case CategoryPlace:
		return &Place{}
	case CategorySoftware:
		return &Software{}
	case CategoryService:
		return &Service{}
	}
	return nil
}
