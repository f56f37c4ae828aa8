package models

// GoogleAdTag joins ads and tags. The composite primary key makes duplicate
// attaches conflict instead of multiplying rows.
type GoogleAdTag struct {
	AdID  string `gorm:"primaryKey;type:uuid" json:"adId"`
	TagID int64  `gorm:"primaryKey" json:"tagId"`

	Ad  *GoogleAd  `gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE" json:"-"`
	Tag *GoogleTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

func (GoogleAdTag) TableName() string {
	return "google_ad_tags"
}
