package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a handler with its registration pattern and
// middleware chain. It encapsulates all information needed to register a
// command or callback with the bot.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all bot command and
// callback handlers. Every command except /start is admin-gated; for
// non-admins the gate falls through to the ticket message path.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	// Non-admin command invocations become ordinary ticket messages.
	gate := []tgbot.Middleware{AdminGate(deps, NewMessageHandler(deps))}

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/info"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "info",
		Handler:     NewInfoHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/squads"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "squads",
		Handler:     NewSquadsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/extend"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "extend",
		Handler:     NewExtendHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/toggle_pro"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "toggle_pro",
		Handler:     NewToggleProHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/disable_device_limit"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "disable_device_limit",
		Handler:     NewDeviceLimitHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/compensate"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "compensate",
		Handler:     NewCompensateHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}
	handlers["/reply"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "reply",
		Handler:     NewTicketsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  gate,
	}

	handlers["view_ticket"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "view_ticket_",
		Handler:     NewViewTicketHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}
	handlers["close_ticket"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "close_ticket_",
		Handler:     NewCloseTicketHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
