package models

import "time"

// TwitterAdSighting records one observation of an ad by a bot at a point in
// time. Sightings are append-only; there is no update path.
type TwitterAdSighting struct {
	ID        string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	AdID      string      `gorm:"type:uuid;index;not null" json:"adId"`
	Ad        *TwitterAd  `gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE" json:"-"`
	BotID     string      `gorm:"type:varchar(64);index;not null" json:"botId"`
	Bot       *TwitterBot `gorm:"foreignKey:BotID;constraint:OnDelete:CASCADE" json:"bot,omitempty"`
	CreatedAt time.Time   `gorm:"type:timestamptz;index;autoCreateTime" json:"createdAt"`
}

func (TwitterAdSighting) TableName() string {
	return "twitter_ad_sightings"
}
