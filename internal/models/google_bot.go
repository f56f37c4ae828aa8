package models

import "time"

// GoogleBot is a scraping persona for the Google source. Its demographic and
// political attributes are filter/aggregation dimensions only; the bot rows
// themselves are written by the importer or the scraper fleet, never by the
// API.
type GoogleBot struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	DOB      time.Time `gorm:"type:timestamptz" json:"dob"`
	Gender   string    `gorm:"type:varchar(16)" json:"gender"`
	FName    string    `gorm:"column:f_name;type:varchar(64)" json:"fName"`
	LName    string    `gorm:"column:l_name;type:varchar(64)" json:"lName"`

	// Other search terms category, see the bot seeding spreadsheet.
	OtherTermsCategory int `json:"otherTermsCategory"`

	Password string  `gorm:"type:varchar(128)" json:"-"`
	LocLat   float64 `json:"locLat"`
	LocLong  float64 `json:"locLong"`
	Type     string  `gorm:"type:varchar(32)" json:"type"`

	// PoliticalRanking is an ordinal in [0,4]:
	// 0 left, 1 centre-left, 2 centre, 3 centre-right, 4 right.
	PoliticalRanking int `gorm:"index" json:"politicalRanking"`

	Ads []GoogleAd `gorm:"foreignKey:BotID" json:"-"`
}

func (GoogleBot) TableName() string {
	return "google_bots"
}
