package models

// GoogleTag is a deduplicated category label. Names are stored lowercased and
// are unique.
type GoogleTag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(64);uniqueIndex:google_tag_name_constraint;not null" json:"name"`

	AdTags []GoogleAdTag `gorm:"foreignKey:TagID" json:"-"`
}

func (GoogleTag) TableName() string {
	return "google_tags"
}
