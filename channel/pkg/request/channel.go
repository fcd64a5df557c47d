package request

type InsertPost struct {
	Body     string `validate:"required,max=4000" json:"body"`
	ImageUrl string `                             json:"image_url"`
}

type InsertComment struct {
	Body string `validate:"required" json:"body"`
}

type ModeratePost struct {
	Hidden bool `json:"hidden"`
}

// Chat is a single buyer utterance sent to the storefront chatbot.
type Chat struct {
	Message string `validate:"required" json:"message"`
}
