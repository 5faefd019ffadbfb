package model

// ItemCounts breaks a user's authored item total down by container kind.
// ChallengeItems is further partitioned by the challenge render type.
type ItemCounts struct {
	All             int `json:"all"`
	PoolItems       int `json:"poolItems"`
	ChallengeItems  int `json:"challengeItems"`
	AssessmentItems int `json:"assessmentItems"`
	VideoItems      int `json:"videoItems"`
	LiveItems       int `json:"liveItems"`
}

// User is one ranked content creator. Built once by the ranking
// aggregator and immutable afterwards; never persisted.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	GoogleEmail     string     `json:"googleEmail"`
	ItemCounts      ItemCounts `json:"itemCounts"`
	RecentItemCount int        `json:"recentItemCount"`
}

// Item is one exported content item, normalized across both container
// kinds. Context is the title of the enclosing pool or challenge.
type Item struct {
	UserID         string   `json:"user_id"`
	Context        string   `json:"context"`
	ItemID         string   `json:"item_id"`
	ItemTitle      string   `json:"item_title"`
	ItemDoc        string   `json:"item_doc"`
	ExplanationDoc string   `json:"explanation_doc,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}
