package types

// LocalizedText carries the Indonesian and English renditions of a
// user-facing text field as one value instead of two parallel columns.
type LocalizedText struct {
	ID string `gorm:"column:id" json:"id"`
	EN string `gorm:"column:en" json:"en"`
}
