package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

type Action int

const (
	ActionIgnore Action = iota
	ActionTellJoke
	ActionAcknowledge
)

func (a Action) String() string {
	switch a {
	case ActionTellJoke:
		return "tell_joke"
	case ActionAcknowledge:
		return "acknowledge"
	default:
		return "ignore"
	}
}

// classifyInput carries the folded text so each rule does not fold again.
type classifyInput struct {
	message *Message
	text    string
	handle  string
}

type rule struct {
	name   string
	match  func(in classifyInput) bool
	action Action
}

// messageRules only look at the message itself, so they can run before the
// bot handle is known.
var messageRules = []rule{
	{
		name:   "empty text",
		match:  func(in classifyInput) bool { return in.message == nil || strings.TrimSpace(in.message.Text) == "" },
		action: ActionIgnore,
	},
	{
		name: "not a group chat",
		match: func(in classifyInput) bool {
			return in.message.ChatKind != Group && in.message.ChatKind != Supergroup
		},
		action: ActionIgnore,
	},
}

// rules is evaluated top to bottom; the first match decides the action.
// Mention and keyword checks are plain substring tests on folded text, so a
// keyword inside a longer word still counts.
var rules = append(append([]rule(nil), messageRules...), []rule{
	{
		name:   "bot not mentioned",
		match:  func(in classifyInput) bool { return in.handle == "" || !strings.Contains(in.text, "@"+in.handle) },
		action: ActionIgnore,
	},
	{
		name:   "joke requested",
		match:  func(in classifyInput) bool { return containsAny(in.text, JokeKeywords) },
		action: ActionTellJoke,
	},
	{
		name:   "mentioned",
		match:  func(classifyInput) bool { return true },
		action: ActionAcknowledge,
	},
}...)

// Addressable reports whether a message could still get a reply once the bot
// handle is known. False means Classify returns ActionIgnore for any handle.
func Addressable(message *Message) bool {
	in := classifyInput{message: message}
	for _, r := range messageRules {
		if r.match(in) {
			return false
		}
	}

	return true
}

// Classify decides how the bot reacts to a chat message. It has no side
// effects and depends only on its arguments.
func Classify(message *Message, botHandle string) Action {
	in := classifyInput{message: message}
	if message != nil {
		in.text = fold(message.Text)
	}
	in.handle = fold(strings.TrimPrefix(botHandle, "@"))

	for _, r := range rules {
		if r.match(in) {
			return r.action
		}
	}

	return ActionIgnore
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, fold(k)) {
			return true
		}
	}
	return false
}

// fold builds a fresh Caser each call, Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
