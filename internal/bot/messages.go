package bot

const (
	callbackSave   = "tx_save"
	callbackCancel = "tx_cancel"
)

const (
	msgWelcome = "👋 Hi, %s!\n\n" +
		"I keep track of your income and expenses.\n" +
		"Just tell me what happened, for example <i>coffee 250</i> or <i>salary 90000</i>, " +
		"and I will record it after you confirm.\n\n" +
		"/stats shows this month, /categories lists categories, /help explains the rest."
	msgHelp = "<b>How to use the bot</b>\n\n" +
		"• Send a message describing a purchase or income: <i>taxi 450, lunch 700</i>\n" +
		"• Confirm with ✅ Save or discard with ❌ Cancel\n" +
		"• /stats — totals for the current month\n" +
		"• /categories — available categories\n" +
		"• Open the app for history, charts and the assistant"
	msgOpenApp        = "📱 Open app"
	msgOpenAppPrompt  = "Tap the button below to open the app."
	msgUnknownCommand = "Unknown command. Try /help."
	msgTextOnly       = "I can only read text messages for now."
	msgError          = "⚠️ Something went wrong. Please try again later."
	msgAIDisabled     = "Text recognition is not configured. Please add transactions in the app."
	msgRateLimited    = "⏳ You have reached the hourly limit for AI requests. Try again later."
	msgCantParse      = "🤔 I could not find a transaction in that message. Try something like <i>groceries 1200</i>."
	msgCancelled      = "❌ Cancelled."
	msgNothingToSave  = "Nothing to save, the draft has expired."
	msgNoStats        = "📊 No transactions this month yet."
	msgDailyLimit     = "🚫 Daily transaction limit reached."
	msgConfirmFooter  = "\nSave?"
	msgSave           = "✅ Save"
	msgCancel         = "❌ Cancel"
)
