package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TwitterBotTypeAmerica     = "america"
	TwitterBotTypeAustralia   = "australia"
	TwitterBotTypeUnspecified = "unspecified"
)

// Twitter political rankings extend the google ordinal with 5 = unspecified.
const TwitterPoliticalUnspecified = 5

// TwitterBot is a scraping persona for the Twitter source. The ID doubles as
// the username.
type TwitterBot struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Username string `gorm:"type:varchar(64);not null" json:"username"`
	Password string `gorm:"type:varchar(128)" json:"-"`
	Phone    string `gorm:"type:varchar(32)" json:"-"`

	Type             string `gorm:"type:varchar(16);default:unspecified" json:"type"`
	PoliticalRanking int    `gorm:"index;default:5" json:"politicalRanking"`

	FollowedAccounts datatypes.JSON `gorm:"type:jsonb" json:"followedAccounts"`
	RelevantTags     datatypes.JSON `gorm:"type:jsonb" json:"relevantTags"`

	DOB *time.Time `gorm:"type:date" json:"dob"`

	Sightings []TwitterAdSighting `gorm:"foreignKey:BotID" json:"-"`
}

func (TwitterBot) TableName() string {
	return "twitter_bots"
}
