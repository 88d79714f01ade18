package casino

// Realtime event names pushed by the server.
const (
	EventHandStart      = "hand_start"
	EventPhaseChange    = "phase_change"
	EventTurn           = "turn"
	EventActionRequired = "action_required"
	EventHandResult     = "hand_result"
	EventGameState      = "game_state"
	EventPlayerAction   = "player_action"
	EventChatMessage    = "chat_message"
	EventError          = "error"
)

// HandStartEvent opens a new hand. Prior hand state is discarded.
type HandStartEvent struct {
	HandID    string     `json:"hand_id"`
	TableID   string     `json:"table_id,omitempty"`
	YourCards []WireCard `json:"your_cards"`
}

// PhaseChangeEvent advances the street and replaces the board.
type PhaseChangeEvent struct {
	Phase          string     `json:"phase"`
	CommunityCards []WireCard `json:"community_cards"`
	Pot            int        `json:"pot"`
}

// TurnEvent is the partial betting update naming the seat to act.
type TurnEvent struct {
	Pot           int    `json:"pot"`
	CurrentBet    int    `json:"current_bet"`
	YourBet       int    `json:"your_bet"`
	YourChips     int    `json:"your_chips"`
	CurrentPlayer string `json:"current_player"`
}

// Hand is the full in-hand snapshot nested in game_state payloads.
type Hand struct {
	Phase          string     `json:"phase"`
	Pot            int        `json:"pot"`
	CurrentBet     int        `json:"current_bet"`
	CommunityCards []WireCard `json:"community_cards"`
	Players        []Player   `json:"players"`
}

// GameState is the polling-style snapshot, also carried by
// action_required prompts.
type GameState struct {
	CurrentHand   Hand   `json:"current_hand"`
	CurrentPlayer string `json:"current_player"`
}

type Winner struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Amount  int    `json:"amount"`
}

// HandResultEvent closes a hand.
type HandResultEvent struct {
	HandID         string     `json:"hand_id,omitempty"`
	Pot            int        `json:"pot"`
	Winners        []Winner   `json:"winners"`
	CommunityCards []WireCard `json:"community_cards,omitempty"`
}

type ErrorEvent struct {
	Error string `json:"error"`
}
