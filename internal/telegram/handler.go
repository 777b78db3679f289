package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/config"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/ws"
)

type commandFunc func(ctx context.Context, from User, chatID int64, args string)

type UpdateHandler struct {
	client      *Client
	state       *StateManager
	users       *services.UserService
	submissions *services.SubmissionService
	ranking     *services.RankingService
	stats       *services.StatsService
	activity    *services.ActivityRecorder
	catalog     *catalog.Catalog
	cfg         *config.Config
	hub         *ws.Hub
	now         func() time.Time

	commands map[string]commandFunc
}

func NewUpdateHandler(
	client *Client,
	state *StateManager,
	users *services.UserService,
	submissions *services.SubmissionService,
	ranking *services.RankingService,
	stats *services.StatsService,
	activity *services.ActivityRecorder,
	cat *catalog.Catalog,
	cfg *config.Config,
	hub *ws.Hub,
) *UpdateHandler {
	h := &UpdateHandler{
		client:      client,
		state:       state,
		users:       users,
		submissions: submissions,
		ranking:     ranking,
		stats:       stats,
		activity:    activity,
		catalog:     cat,
		cfg:         cfg,
		hub:         hub,
		now:         time.Now,
	}

	h.commands = map[string]commandFunc{
		"start":       h.tracked("start", h.cmdStart),
		"register":    h.tracked("register", h.cmdRegister),
		"challenges":  h.tracked("challenges", h.cmdChallenges),
		"submit":      h.tracked("submit", h.cmdSubmit),
		"progress":    h.tracked("progress", h.cmdProgress),
		"leaderboard": h.tracked("leaderboard", h.cmdLeaderboard),
		"help":        h.tracked("help", h.cmdHelp),
		"cancel":      h.tracked("cancel", h.cmdCancel),
		"admin_stats": h.tracked("admin_stats", h.cmdAdminStats),
	}
	return h
}

// tracked wraps a command with activity recording so the audit trail never
// leaks into the command bodies themselves.
func (h *UpdateHandler) tracked(action string, fn commandFunc) commandFunc {
	return func(ctx context.Context, from User, chatID int64, args string) {
		h.activity.Record(ctx, from.ID, "bot:"+action, args)
		fn(ctx, from, chatID, args)
	}
}

func (h *UpdateHandler) Handle(upd Update) {
	ctx := context.Background()
	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.Message != nil {
		h.handleMessage(ctx, upd.Message)
	}
}

func (h *UpdateHandler) handleMessage(ctx context.Context, msg *Message) {
	if msg.From == nil {
		return
	}
	from := *msg.From
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if name, args, ok := parseCommand(msg); ok {
		if fn, known := h.commands[name]; known {
			fn(ctx, from, chatID, args)
		} else {
			h.client.SendMessage(chatID, "Unknown command. Use /help to see what I understand.", "", nil)
		}
		return
	}

	us := h.state.Get(from.ID)
	if us.State == StateAwaitingFlag {
		h.processFlag(ctx, from, chatID, us.ChallengeID, text)
		return
	}

	h.client.SendMessage(chatID, "Use /start or the menu buttons.", "", MainMenuKeyboard())
}

func (h *UpdateHandler) cmdStart(ctx context.Context, from User, chatID int64, _ string) {
	h.state.Clear(from.ID)

	text := fmt.Sprintf(
		"🔍 Welcome to the DIFFYE CTF! 🔍\n\n"+
			"Hi %s, I track the fugitive-hunt investigation challenges.\n\n"+
			"📅 Event: %s to %s\n"+
			"🎯 Goal: solve all %d challenges\n\n"+
			"Use /register to sign up. Already registered? Pick today's challenge with /challenges.",
		sanitizeText(from.FirstName),
		h.cfg.StartDate.Format("02/01"),
		h.cfg.EndDate.Format("02/01/2006"),
		h.catalog.Len(),
	)
	h.client.SendMessage(chatID, text, "", nil)
}

func (h *UpdateHandler) cmdRegister(ctx context.Context, from User, chatID int64, _ string) {
	username := from.Username
	if username == "" {
		username = fmt.Sprintf("user_%d", from.ID)
	}

	if err := h.users.Register(ctx, from.ID, username, from.FullName()); err != nil {
		h.client.SendMessage(chatID, "⚠️ Registration hit a problem. Please contact an admin.", "", nil)
		return
	}

	h.client.SendMessage(chatID,
		"✅ Registration successful!\n\n"+
			"You're in. Available commands:\n\n"+
			"• 📋 /challenges • see the challenges\n"+
			"• 🚩 /submit • send a flag\n"+
			"• 📊 /progress • your progress\n"+
			"• 🏆 /leaderboard • the ranking\n"+
			"• ❓ /help • help\n\n"+
			"Good luck, investigator! 🕵️",
		"", MainMenuKeyboard())
}

func (h *UpdateHandler) cmdChallenges(ctx context.Context, from User, chatID int64, _ string) {
	text, kb := h.renderChallengeList(ctx, from.ID)
	h.client.SendMessage(chatID, text, "", kb)
}

func (h *UpdateHandler) renderChallengeList(ctx context.Context, userID int64) (string, *InlineKeyboardMarkup) {
	completed := []int{}
	if progress, err := h.users.GetProgress(ctx, userID); err == nil {
		completed = progress.CompletedChallenges
	}
	done := make(map[int]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	now := h.now()
	var b strings.Builder
	b.WriteString("📋 CHALLENGES\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	for _, ch := range h.catalog.All() {
		switch {
		case done[ch.ID]:
			fmt.Fprintf(&b, "✅ %s\n   Status: ✅ Completed\n\n", ch.Title)
		case !h.catalog.IsUnlocked(ch.ID, now):
			fmt.Fprintf(&b, "🔒 %s\n   Status: 🔒 Opens %s\n\n",
				ch.Title, ch.UnlockAt.In(h.cfg.Location).Format("02/01 15:04"))
		default:
			fmt.Fprintf(&b, "🔓 %s\n   Status: 🔓 Open\n\n", ch.Title)
		}
	}

	return b.String(), ChallengeListKeyboard(h.catalog, completed, now)
}

func (h *UpdateHandler) cmdSubmit(ctx context.Context, from User, chatID int64, _ string) {
	now := h.now()
	var rows [][]InlineKeyboardButton
	for _, ch := range h.catalog.All() {
		if !h.catalog.IsUnlocked(ch.ID, now) {
			continue
		}
		rows = append(rows, []InlineKeyboardButton{{
			Text:         fmt.Sprintf("🎯 Challenge %d", ch.ID),
			CallbackData: Command{Kind: CallbackSubmitFlag, ChallengeID: ch.ID}.Data(),
		}})
	}

	if len(rows) == 0 {
		h.client.SendMessage(chatID, "No challenges are open for submissions right now.", "", nil)
		return
	}

	rows = append(rows, []InlineKeyboardButton{{
		Text:         "🔙 Main Menu",
		CallbackData: Command{Kind: CallbackMainMenu}.Data(),
	}})
	h.client.SendMessage(chatID,
		"🚩 SUBMIT FLAG\n\nPick the challenge you want to answer:",
		"", &InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (h *UpdateHandler) processFlag(ctx context.Context, from User, chatID int64, challengeID int, flag string) {
	h.activity.Record(ctx, from.ID, "bot:flag", fmt.Sprintf("challenge %d", challengeID))
	result := h.submissions.Submit(ctx, from.ID, challengeID, flag)

	kb := BackToChallengesKeyboard()
	switch result {
	case services.SubmitCorrect:
		title := ""
		if ch, ok := h.catalog.Get(challengeID); ok {
			title = ch.Title
		}
		h.client.SendMessage(chatID,
			fmt.Sprintf("✅ CORRECT FLAG!\n\nGreat work! You completed %s.\n\n🎯 On to the next one.", title),
			"", kb)
		h.announceSolve(ctx, from, challengeID)
	case services.SubmitAlreadyCompleted:
		h.client.SendMessage(chatID, "ℹ️ You already completed this challenge.", "", kb)
	case services.SubmitIncorrect:
		h.client.SendMessage(chatID,
			"❌ WRONG FLAG\n\nThat's not it. Re-read the challenge and try again.\n\n💡 Check the format: FLAG{WORD}",
			"", kb)
	case services.SubmitLocked:
		h.client.SendMessage(chatID, "🔒 That challenge hasn't opened yet.", "", kb)
	case services.SubmitNotRegistered:
		h.client.SendMessage(chatID, "⚠️ You're not registered yet. Use /register first.", "", nil)
	default:
		h.client.SendMessage(chatID,
			"⚠️ Something went wrong processing your flag. Please try again.", "", kb)
	}

	h.state.Clear(from.ID)
}

func (h *UpdateHandler) announceSolve(ctx context.Context, from User, challengeID int) {
	if h.hub == nil {
		return
	}
	ch, ok := h.catalog.Get(challengeID)
	if !ok {
		return
	}
	h.hub.Broadcast(ws.SolveEvent{
		Type:        "solve",
		FullName:    sanitizeText(from.FullName()),
		ChallengeID: challengeID,
		Title:       ch.Title,
		SolvedAt:    h.now(),
	})
}

func (h *UpdateHandler) cmdProgress(ctx context.Context, from User, chatID int64, _ string) {
	progress, err := h.users.GetProgress(ctx, from.ID)
	if err != nil || progress.Stats == nil {
		h.client.SendMessage(chatID,
			"📊 MY PROGRESS\n\n⚠️ You're not registered. Use /register to sign up.", "", nil)
		return
	}

	stats := progress.Stats
	var b strings.Builder
	b.WriteString("📊 MY PROGRESS\n" + strings.Repeat("=", 30) + "\n\n")
	if progress.User != nil {
		fmt.Fprintf(&b, "👤 User: %s\n", sanitizeText(progress.User.Username))
	}
	fmt.Fprintf(&b, "✅ Challenges Completed: %d/%d\n", stats.ChallengesCompleted, h.catalog.Len())
	fmt.Fprintf(&b, "🎯 Total Attempts: %d\n", stats.TotalAttempts)
	fmt.Fprintf(&b, "📅 Last Activity: %s\n\n", stats.LastActivity.In(h.cfg.Location).Format("02/01 15:04"))

	if len(progress.CompletedChallenges) > 0 {
		b.WriteString("Completed:\n")
		for _, id := range progress.CompletedChallenges {
			if ch, ok := h.catalog.Get(id); ok {
				fmt.Fprintf(&b, "• %s\n", ch.Title)
			}
		}
	}
	if stats.ChallengesCompleted == h.catalog.Len() {
		b.WriteString("\n🏆 CONGRATULATIONS! You solved everything.")
	}

	h.client.SendMessage(chatID, b.String(), "", ProgressKeyboard())
}

func (h *UpdateHandler) cmdLeaderboard(ctx context.Context, from User, chatID int64, _ string) {
	entries := h.ranking.Leaderboard(ctx, services.DefaultLeaderboardSize)

	var b strings.Builder
	b.WriteString("🏆 TOP 10 RANKING\n" + strings.Repeat("=", 30) + "\n\n")

	if len(entries) == 0 {
		b.WriteString("Nobody is on the board yet.\n")
	} else {
		medals := []string{"🥇", "🥈", "🥉"}
		for i, e := range entries {
			medal := fmt.Sprintf("%d.", i+1)
			if i < len(medals) {
				medal = medals[i]
			}
			fmt.Fprintf(&b, "%s %s\n   ✅ Challenges: %d/%d\n   🎯 Attempts: %d\n\n",
				medal, sanitizeText(e.FullName), e.ChallengesCompleted, h.catalog.Len(), e.TotalAttempts)
		}
	}

	h.client.SendMessage(chatID, b.String(), "", ProgressKeyboard())
}

func (h *UpdateHandler) cmdHelp(ctx context.Context, from User, chatID int64, _ string) {
	h.client.SendMessage(chatID,
		"❓ HELP\n\n"+
			"Commands:\n"+
			"• /start • introduction\n"+
			"• /register • sign up\n"+
			"• /challenges • open challenges\n"+
			"• /submit • send a flag\n"+
			"• /progress • your progress\n"+
			"• /leaderboard • the ranking\n"+
			"• /cancel • abort a submission\n\n"+
			"How to play:\n"+
			"1. /register\n"+
			"2. Read the challenge and its material\n"+
			"3. Submit flags as FLAG{WORD} or FLAG{WORD_WORD}\n"+
			"4. Solve them all!\n\n"+
			"Good luck! 🕵️", "", nil)
}

func (h *UpdateHandler) cmdCancel(ctx context.Context, from User, chatID int64, _ string) {
	h.state.Clear(from.ID)
	h.client.SendMessage(chatID, "❌ Operation cancelled.", "", MainMenuKeyboard())
}

func (h *UpdateHandler) cmdAdminStats(ctx context.Context, from User, chatID int64, _ string) {
	if !h.cfg.IsAdmin(from.ID) {
		h.client.SendMessage(chatID, "⛔ You are not allowed to use this command.", "", nil)
		return
	}

	stats := h.stats.AdminStats(ctx)

	var b strings.Builder
	b.WriteString("📊 ADMIN STATISTICS\n" + strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "👥 Total Users: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "🔥 Active (24h): %d\n\n", stats.ActiveUsers24h)
	b.WriteString("Completions per challenge:\n")
	for _, pc := range stats.PerChallenge {
		title := fmt.Sprintf("Challenge %d", pc.ChallengeID)
		if ch, ok := h.catalog.Get(pc.ChallengeID); ok {
			title = ch.Title
		}
		fmt.Fprintf(&b, "• %s: %d users\n", title, pc.Completions)
	}

	h.client.SendMessage(chatID, b.String(), "", nil)
}

func (h *UpdateHandler) handleCallback(ctx context.Context, cb *CallbackQuery) {
	cmd, err := ParseCallback(cb.Data)
	if err != nil {
		h.client.AnswerCallbackQuery(cb.ID, "Unknown action", true)
		return
	}

	from := cb.From
	if cb.Message == nil {
		h.client.AnswerCallbackQuery(cb.ID, "Session expired, use /start", true)
		return
	}
	chatID := cb.Message.Chat.ID

	switch cmd.Kind {
	case CallbackMainMenu:
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		h.client.EditMessageText(chatID, cb.Message.MessageID,
			"🔍 DIFFYE CTF\n\nPick an option:", "", MainMenuKeyboard())

	case CallbackListChallenges:
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		text, kb := h.renderChallengeList(ctx, from.ID)
		h.client.EditMessageText(chatID, cb.Message.MessageID, text, "", kb)

	case CallbackShowChallenge:
		ch, ok := h.catalog.Get(cmd.ChallengeID)
		if !ok || !h.catalog.IsUnlocked(ch.ID, h.now()) {
			h.client.AnswerCallbackQuery(cb.ID, "That challenge is not open", true)
			return
		}
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		h.client.EditMessageText(chatID, cb.Message.MessageID, ch.Prompt, "", ChallengeDetailKeyboard(ch))

	case CallbackSubmitFlag:
		ch, ok := h.catalog.Get(cmd.ChallengeID)
		if !ok {
			h.client.AnswerCallbackQuery(cb.ID, "Unknown challenge", true)
			return
		}
		h.state.Set(from.ID, &UserState{State: StateAwaitingFlag, ChallengeID: ch.ID})
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		h.client.EditMessageText(chatID, cb.Message.MessageID,
			fmt.Sprintf("🚩 Submit Flag - %s\n\nSend your flag as:\nFLAG{WORD}\n\nSend /cancel to abort.", ch.Title),
			"", nil)

	case CallbackMyProgress:
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		h.cmdProgress(ctx, from, chatID, "")

	case CallbackLeaderboard:
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		h.cmdLeaderboard(ctx, from, chatID, "")
	}
}

func parseCommand(msg *Message) (name, args string, ok bool) {
	for _, e := range msg.Entities {
		if e.Type == "bot_command" && e.Offset == 0 {
			cmdText := msg.Text[e.Offset : e.Offset+e.Length]
			cmdText = strings.Split(cmdText, "@")[0]
			return strings.TrimPrefix(cmdText, "/"), strings.TrimSpace(msg.Text[e.Offset+e.Length:]), true
		}
	}
	// Clients don't always tag entities; fall back to the leading slash.
	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/") {
		parts := strings.SplitN(text[1:], " ", 2)
		name = strings.Split(parts[0], "@")[0]
		if len(parts) == 2 {
			args = strings.TrimSpace(parts[1])
		}
		return name, args, true
	}
	return "", "", false
}

// sanitizeText strips characters that break Telegram markup and caps length,
// since display names are attacker-controlled.
func sanitizeText(text string) string {
	if text == "" {
		return "Anonymous"
	}
	replacer := strings.NewReplacer(
		"_", " ", "*", " ", "[", "(", "]", ")",
		"`", "'", "~", "-", ">", " ", "<", " ",
	)
	sanitized := replacer.Replace(text)
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return sanitized
}
