package models

const (
	TwitterAdTypeUnspecified = "AD_TYPE_UNSPECIFIED"
	TwitterAdTypeTweet       = "AD_TYPE_TWEET"
	TwitterAdTypeFollow      = "AD_TYPE_FOLLOW"
)

// TwitterAd is a unique creative, deduplicated by tweet link. Individual
// observations live in TwitterAdSighting.
type TwitterAd struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PromoterHandle string  `gorm:"type:varchar(128)" json:"promoterHandle"`
	Content        *string `gorm:"type:text" json:"content"`
	OfficialLink   *string `gorm:"type:text" json:"officialLink"`
	TweetLink      *string `gorm:"type:text;uniqueIndex:unique_tweet_link" json:"tweetLink"`
	Image          *string `gorm:"type:text" json:"image"`
	AdType         string  `gorm:"type:varchar(32);default:AD_TYPE_UNSPECIFIED" json:"adType"`

	AdTags    []TwitterAdTag      `gorm:"foreignKey:AdID" json:"-"`
	Sightings []TwitterAdSighting `gorm:"foreignKey:AdID" json:"-"`
}

func (TwitterAd) TableName() string {
	return "twitter_ads"
}
