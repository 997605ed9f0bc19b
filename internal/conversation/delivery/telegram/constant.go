package telegram

import "time"

const (
	LogPrefix = "conversation.delivery.telegram"

	// SecretTokenHeader carries the secret registered with setWebhook.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	// UserIDFormat maps a Telegram user to a conversation user id.
	UserIDFormat = "telegram_%d"

	DefaultProcessTimeout = 90 * time.Second
	chatActionTyping      = "typing"
)

const (
	CommandStart = "/start"
	CommandHelp  = "/help"
	CommandReset = "/reset"
)

const (
	MsgWelcome = "👋 Hi! I'm your calendar assistant.\n\n" +
		"Tell me what you need in plain words and I will take care of your calendar:\n" +
		"• \"Lunch with Ana tomorrow at noon\"\n" +
		"• \"Move the budget review to Friday at 3pm\"\n" +
		"• \"What do I have next week?\"\n\n" +
		"Send /help for more, /reset to start over."
	MsgHelp = "*How to use me*\n\n" +
		"• Create: `Team sync on Monday at 10 for 30 minutes`\n" +
		"• Update: `Add bob@example.com to the team sync`\n" +
		"• Cancel: `Cancel the dentist appointment`\n" +
		"• Prepare: `Help me prepare for the client call`\n" +
		"• Follow up: `Schedule a follow-up to the design review`\n" +
		"• List: `What's on my calendar this week?`\n\n" +
		"You can ask for several things in one message."
	MsgReset       = "🧹 Done, I forgot our conversation."
	MsgResetFailed = "⚠️ I could not reset our conversation, please try again."
	MsgFailed      = "⚠️ Something went wrong while handling your request. Please try again."
	MsgTimedOut    = "⌛ That took too long. Please try again."
	MsgRateLimited = "🐢 You are sending messages too fast, give me a moment."
	MsgUnsupported = "I can only read text messages for now."
)
