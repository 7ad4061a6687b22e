package notifier

const (
	// DiscordMaxContentLength is the message content limit of a webhook call
	DiscordMaxContentLength = 2000

	consoleNotifierName = "console"
	discordNotifierName = "discord"
)
