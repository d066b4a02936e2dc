package model

// UnsortedCategoryID is the virtual bucket for activities without a category.
// No categories row carries this id.
const UnsortedCategoryID = -1

// UncategorizedName is reported for facts whose activity has no stored category.
const UncategorizedName = "Uncategorized"

// Category groups activities in a user-defined order.
type Category struct {
	ID        int     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name      string  `gorm:"column:name"`
	ColorCode *string `gorm:"column:color_code"`
	Order     int     `gorm:"column:category_order"`
}

func (Category) TableName() string { return "categories" }
