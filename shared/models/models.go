package models

// Account is a registered user. Password is stored and returned as plaintext.
type Account struct {
	ID       int64  `json:"accountId" db:"account_id"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
}

// Message is a text post attributed to an account by id only; PostedBy is
// not checked against the account table.
type Message struct {
	ID              int64  `json:"messageId" db:"message_id"`
	PostedBy        int64  `json:"postedBy" db:"posted_by"`
	MessageText     string `json:"messageText" db:"message_text"`
	TimePostedEpoch int64  `json:"timePostedEpoch" db:"time_posted_epoch"`
}
