package models

type TwitterTag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(64);uniqueIndex:twitter_tag_name_constraint;not null" json:"name"`

	AdTags []TwitterAdTag `gorm:"foreignKey:TagID" json:"-"`
}

func (TwitterTag) TableName() string {
	return "twitter_tags"
}
