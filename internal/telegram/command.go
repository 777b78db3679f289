package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// CallbackKind enumerates every button action the bot understands. Callback
// data strings are parsed into a typed Command before dispatch; nothing
// downstream ever sees the raw routing string.
type CallbackKind int

const (
	CallbackUnknown CallbackKind = iota
	CallbackMainMenu
	CallbackListChallenges
	CallbackShowChallenge
	CallbackSubmitFlag
	CallbackMyProgress
	CallbackLeaderboard
)

type Command struct {
	Kind        CallbackKind
	ChallengeID int
}

// ParseCallback turns callback data like "challenge:3" into a Command.
func ParseCallback(data string) (Command, error) {
	switch data {
	case "menu":
		return Command{Kind: CallbackMainMenu}, nil
	case "challenges":
		return Command{Kind: CallbackListChallenges}, nil
	case "progress":
		return Command{Kind: CallbackMyProgress}, nil
	case "leaderboard":
		return Command{Kind: CallbackLeaderboard}, nil
	}

	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return Command{}, fmt.Errorf("unknown callback %q", data)
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return Command{}, fmt.Errorf("bad challenge id in callback %q", data)
	}

	switch parts[0] {
	case "challenge":
		return Command{Kind: CallbackShowChallenge, ChallengeID: id}, nil
	case "submit":
		return Command{Kind: CallbackSubmitFlag, ChallengeID: id}, nil
	}
	return Command{}, fmt.Errorf("unknown callback %q", data)
}

func (c Command) Data() string {
	switch c.Kind {
	case CallbackMainMenu:
		return "menu"
	case CallbackListChallenges:
		return "challenges"
	case CallbackMyProgress:
		return "progress"
	case CallbackLeaderboard:
		return "leaderboard"
	case CallbackShowChallenge:
		return fmt.Sprintf("challenge:%d", c.ChallengeID)
	case CallbackSubmitFlag:
		return fmt.Sprintf("submit:%d", c.ChallengeID)
	}
	return ""
}
