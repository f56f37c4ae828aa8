package models

type TwitterAdTag struct {
	AdID  string `gorm:"primaryKey;type:uuid" json:"adId"`
	TagID int64  `gorm:"primaryKey" json:"tagId"`

	Ad  *TwitterAd  `gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE" json:"-"`
	Tag *TwitterTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

func (TwitterAdTag) TableName() string {
	return "twitter_ad_tags"
}
