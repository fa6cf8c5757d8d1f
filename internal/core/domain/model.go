package domain

type ChatKind string

const (
	Private    ChatKind = "private"
	Group      ChatKind = "group"
	Supergroup ChatKind = "supergroup"
	Other      ChatKind = "other"
)

// ParseChatKind maps a transport chat type onto a ChatKind, collapsing
// anything unknown (channels included) to Other.
func ParseChatKind(kind string) ChatKind {
	switch ChatKind(kind) {
	case Private, Group, Supergroup:
		return ChatKind(kind)
	default:
		return Other
	}
}

type Message struct {
	ID       int
	ChatID   int64
	ChatKind ChatKind
	Username string
	Text     string
}

type ParseMode string

const (
	PlainText ParseMode = ""
	HTML      ParseMode = "HTML"
)

type Joke struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}
