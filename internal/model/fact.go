package model

import "time"

// Fact is a time interval spent on one activity.
// An open fact has no end or an end equal to its start.
type Fact struct {
	ID         int        `gorm:"column:id;primaryKey"`
	ActivityID int        `gorm:"column:activity_id"`
	StartTime  Timestamp  `gorm:"column:start_time"`
	EndTime    *Timestamp `gorm:"column:end_time"`
}

func (Fact) TableName() string { return "facts" }

// Open reports whether the fact is still running.
func (f Fact) Open() bool {
	return f.EndTime == nil || f.EndTime.Equal(f.StartTime.Time)
}

// Duration is the closed length of the fact, or the time elapsed until now
// for an open one.
func (f Fact) Duration(now time.Time) time.Duration {
	if f.Open() {
		return now.Sub(f.StartTime.Time)
	}
	return f.EndTime.Sub(f.StartTime.Time)
}

// FactEntry is a fact joined with the names of its activity and category.
type FactEntry struct {
	Fact
	ActivityName string `gorm:"column:activity_name"`
	CategoryID   *int   `gorm:"column:category_id"`
	CategoryName string `gorm:"column:category_name"`
}
