package telegram

import (
	"fmt"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
)

func MainMenuKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "📋 Challenges", CallbackData: Command{Kind: CallbackListChallenges}.Data()}},
			{{Text: "📊 My Progress", CallbackData: Command{Kind: CallbackMyProgress}.Data()}},
			{{Text: "🏆 Leaderboard", CallbackData: Command{Kind: CallbackLeaderboard}.Data()}},
		},
	}
}

// ChallengeListKeyboard offers a button per unlocked, unsolved challenge.
func ChallengeListKeyboard(cat *catalog.Catalog, completed []int, now time.Time) *InlineKeyboardMarkup {
	done := make(map[int]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	var rows [][]InlineKeyboardButton
	for _, ch := range cat.All() {
		if !cat.IsUnlocked(ch.ID, now) || done[ch.ID] {
			continue
		}
		rows = append(rows, []InlineKeyboardButton{{
			Text:         fmt.Sprintf("🎯 Challenge %d", ch.ID),
			CallbackData: Command{Kind: CallbackShowChallenge, ChallengeID: ch.ID}.Data(),
		}})
	}

	rows = append(rows, []InlineKeyboardButton{{
		Text:         "🔙 Main Menu",
		CallbackData: Command{Kind: CallbackMainMenu}.Data(),
	}})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func ChallengeDetailKeyboard(ch catalog.Challenge) *InlineKeyboardMarkup {
	rows := [][]InlineKeyboardButton{
		{{Text: "🚩 Submit Flag", CallbackData: Command{Kind: CallbackSubmitFlag, ChallengeID: ch.ID}.Data()}},
	}
	if ch.MaterialLink != "" {
		rows = append(rows, []InlineKeyboardButton{{Text: "📥 Download Material", URL: ch.MaterialLink}})
	}
	rows = append(rows, []InlineKeyboardButton{{
		Text:         "🔙 Challenges",
		CallbackData: Command{Kind: CallbackListChallenges}.Data(),
	}})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func BackToChallengesKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "📋 Challenges", CallbackData: Command{Kind: CallbackListChallenges}.Data()}},
		},
	}
}

func ProgressKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "📋 Challenges", CallbackData: Command{Kind: CallbackListChallenges}.Data()}},
			{{Text: "🏆 Leaderboard", CallbackData: Command{Kind: CallbackLeaderboard}.Data()}},
			{{Text: "🔙 Main Menu", CallbackData: Command{Kind: CallbackMainMenu}.Data()}},
		},
	}
}
