package cqrs

type RegisterAccountCommand struct {
	Username string `validate:"required"`
	Password string `validate:"min=4"`
}

// LoginCommand is matched against stored credentials exactly, without hashing.
type LoginCommand struct {
	Username string
	Password string
}

type CreateMessageCommand struct {
	PostedBy        int64
	MessageText     string `validate:"required,max=255"`
	TimePostedEpoch int64
}

type UpdateMessageTextCommand struct {
	MessageID   int64
	MessageText string `validate:"required,max=255"`
}

type DeleteMessageCommand struct {
	MessageID int64
}
