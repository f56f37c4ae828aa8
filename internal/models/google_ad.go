package models

import "time"

// GoogleAd is one observed advertisement. Each row is a single sighting by a
// single bot, so the bot reference lives directly on the ad.
type GoogleAd struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	BotID     string     `gorm:"type:uuid;index;not null" json:"botId"`
	Bot       *GoogleBot `gorm:"foreignKey:BotID;constraint:OnDelete:CASCADE" json:"bot,omitempty"`
	CreatedAt time.Time  `gorm:"type:timestamptz;index;autoCreateTime" json:"createdAt"`
	Image     *string    `gorm:"type:text" json:"image"`
	Headline  *string    `gorm:"type:text" json:"headline"`
	HTML      *string    `gorm:"column:html;type:text" json:"html"`
	AdLink    *string    `gorm:"type:text" json:"adLink"`
	LoggedIn  bool       `json:"loggedIn"`
	SeenOn    *string    `gorm:"type:text" json:"seenOn"`

	AdTags []GoogleAdTag `gorm:"foreignKey:AdID" json:"-"`
}

func (GoogleAd) TableName() string {
	return "google_ads"
}
