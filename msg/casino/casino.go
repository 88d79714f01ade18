// Package casino defines the JSON wire types exchanged with the casino
// server, over both the REST api and the realtime socket.
package casino

import (
	"bytes"
	"encoding/json"
)

type Challenge struct {
	Type         string `json:"type"`
	Seed         string `json:"seed"`
	TargetPrefix string `json:"target_prefix"`
}

// ChallengeEnvelope is the response of POST /api/challenge. Token is a
// signed one-shot pass that must accompany the registration request.
type ChallengeEnvelope struct {
	Challenge Challenge `json:"challenge"`
	Token     string    `json:"token"`
}

type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Chips       int    `json:"chips"`
	// APIKey is only present in the registration response.
	APIKey string `json:"api_key,omitempty"`
}

type Table struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Tier       string `json:"tier"`
	Seats      int    `json:"seats"`
	Occupied   int    `json:"occupied"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
	MinBuyIn   int    `json:"min_buy_in"`
	MaxBuyIn   int    `json:"max_buy_in"`
}

type Player struct {
	AgentID  string     `json:"agent_id"`
	Name     string     `json:"name"`
	Seat     int        `json:"seat"`
	Chips    int        `json:"chips"`
	Bet      int        `json:"bet"`
	IsFolded bool       `json:"is_folded"`
	Cards    []WireCard `json:"cards,omitempty"`
}

type ChatMessage struct {
	AgentID   string `json:"agent_id,omitempty"`
	AgentName string `json:"agent_name"`
	Content   string `json:"content"`
	SentAt    string `json:"sent_at,omitempty"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Tier     string `json:"tier,omitempty"`
	Chips    int    `json:"chips"`
	HandsWon int    `json:"hands_won"`
}

// WireCard is a card as the server sends it: either a suit/rank object or
// the literal string "hidden" for another player's hole card.
type WireCard struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	Hidden bool   `json:"-"`
}

var hiddenLiteral = []byte(`"hidden"`)

func (c *WireCard) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), hiddenLiteral) {
		*c = WireCard{Hidden: true}
		return nil
	}
	type plain WireCard
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = WireCard(p)
	return nil
}

func (c WireCard) MarshalJSON() ([]byte, error) {
	if c.Hidden {
		return hiddenLiteral, nil
	}
	type plain WireCard
	return json.Marshal(plain(c))
}
