// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bot

// Replies sent to chat users
const (
	msgGreeting      = "🎉 Hi! Ready to drop some words for the sprint?"
	msgActiveHeader  = "📋 Active sprints:"
	msgSendWords     = "Send 1 to 3 words to participate!"
	msgNoActive      = "❌ No active sprints right now. Wait for a new one!"
	msgApology       = "❌ Oops, something went wrong! Please try again later."
	msgUnknown       = "🤔 Unknown command. Send /start to see what's going on."
	msgHelpHint      = "Write /help to see your options."
	msgNotFound      = "❌ Sprint not found!"
	msgNoSprints     = "📭 No sprints yet."
	msgSprintsHeader = "📋 Sprints:"

	msgUsageStartSprint = "❌ Use: /start_sprint <duration: 1, 7 or 30> <theme>"
	msgUsageEndSprint   = "❌ Specify the sprint ID: /end_sprint <id>"
	msgUsageGetWords    = "❌ Specify the sprint ID: /get_words <id>"
	msgUsageBroadcast   = "❌ Specify a message: /broadcast <text>"

	msgSprintStarted   = "✅ Sprint #%d started! Notified %d of %d users."
	msgSprintAnnounce  = "🎉 New sprint #%d started! Theme: %s. Duration: %d %s. Send your words!"
	msgSprintEnded     = "✅ Sprint #%d completed!"
	msgSprintWasClosed = "ℹ️ Sprint #%d was already completed."
	msgNothingExport   = "📭 Nothing to export for sprint #%d."
	msgWordsSent       = "✅ Words for sprint #%d sent!"
	msgBroadcastPrefix = "📢 "
	msgBroadcastDone   = "✅ Message sent to %d of %d users."

	msgAccepted  = "✅ Words accepted for sprint #%d!"
	msgDuplicate = "❌ You already submitted words for sprint #%d!"
	msgClosed    = "❌ Sprint #%d has just closed."

	msgWhoAmI = "ℹ️ Your Telegram ID: %d\nUsername: %s\nAdmin: %s"
)

const msgHelp = `📖 Admin options:
/start_sprint <1|7|30> <theme> - start a new sprint
/end_sprint <id> - end a sprint
/get_words <id> - get a sprint's words as CSV
/list_sprints - list all sprints
/broadcast <text> - message every user
/stats - today's report`

// permission replies per command
var msgAdminOnly = map[string]string{
	"help":         "❌ Only admins can use /help!",
	"start_sprint": "❌ Only the admin can start sprints!",
	"end_sprint":   "❌ Only the admin can end sprints!",
	"get_words":    "❌ Only the admin can get words!",
	"list_sprints": "❌ Only the admin can list sprints!",
	"broadcast":    "❌ Only the admin can broadcast messages!",
	"stats":        "❌ Only the admin can see reports!",
}

const msgPermissionDenied = "❌ Only the admin can do that!"
