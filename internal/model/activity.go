package model

// Activity is a named task the user spends time on.
// Deleted activities stay in the table while facts reference them.
type Activity struct {
	ID         int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name       string `gorm:"column:name"`
	Order      int    `gorm:"column:activity_order"`
	Deleted    bool   `gorm:"column:deleted"`
	CategoryID int    `gorm:"column:category_id"`
}

func (Activity) TableName() string { return "activities" }

// Unsorted reports whether the activity sits in the virtual unsorted bucket.
func (a Activity) Unsorted() bool {
	return a.CategoryID == UnsortedCategoryID
}
