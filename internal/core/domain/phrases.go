package domain

import "math/rand/v2"

// MentionReplies is the bank the bot picks from when it is mentioned without
// being asked for a joke.
var MentionReplies = []string{
	"Кто-то звал самого веселого бота? 🎉",
	"На месте! Готов шутить и смеяться. 😄",
	"Вы упомянули меня! У вас отличный вкус. ✨",
	"Я здесь! Что-то случилось или просто хотели поболтать?",
	"Слышу-слышу! Чем могу быть полезен?",
}

// JokeKeywords trigger a joke when they appear anywhere in a mention.
var JokeKeywords = []string{"анекдот", "шутка", "шутку", "расскажи", "пошути", "joke"}

const (
	NoJokesCommandReply = "Упс, у меня закончились шутки! 😔 Запустите парсер или проверьте файл `jokes.json`."
	NoJokesMentionReply = "Хотел бы пошутить, но шутки кончились! 😥"
)

const UsageMessage = "<b>Привет! Я бот-весельчак!</b>\n\n" +
	"Добавьте меня в свой групповой чат, и я буду рассказывать анекдоты!\n\n" +
	"<b>Как мной пользоваться:</b>\n" +
	"• Напишите команду <code>/joke</code>, чтобы получить случайный анекдот.\n" +
	"• Упомяните меня (@имя_бота) и попросите рассказать шутку, например: " +
	"<i>«@имя_бота, расскажи анекдот»</i>.\n" +
	"• Если просто упомянуть меня, я тоже отреагирую! 😉"

// PickPhrase returns one entry of phrases chosen by intN, or "" for an empty
// bank. A nil intN falls back to math/rand.
func PickPhrase(intN func(n int) int, phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}

	if intN == nil {
		intN = rand.IntN
	}

	return phrases[intN(len(phrases))]
}
