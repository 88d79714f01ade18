package holdem

import (
	"fmt"

	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/core/log"
	"github.com/lais-vegas/vegas/msg/casino"
)

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
)

var phaseOrder = map[Phase]int{
	PhaseWaiting:  0,
	PhasePreflop:  1,
	PhaseFlop:     2,
	PhaseTurn:     3,
	PhaseRiver:    4,
	PhaseShowdown: 5,
}

// HandState is a point-in-time snapshot of one hand from this agent's
// seat. It is owned by the Reconstructor and handed out by value.
type HandState struct {
	Phase          Phase
	Pot            int
	CommunityCards []Card
	YourCards      []Card
	YourBet        int
	CurrentBet     int
	YourChips      int
	IsYourTurn     bool
	ActivePlayers  int
	Players        []casino.Player
}

// CallAmount is derived, never stored.
func (s HandState) CallAmount() int {
	if s.CurrentBet <= s.YourBet {
		return 0
	}
	return s.CurrentBet - s.YourBet
}

func (s HandState) clone() HandState {
	out := s
	out.CommunityCards = append([]Card(nil), s.CommunityCards...)
	out.YourCards = append([]Card(nil), s.YourCards...)
	out.Players = append([]casino.Player(nil), s.Players...)
	return out
}

// Reconstructor folds partial server events into one coherent HandState.
// It never infers hidden information and drops events that imply an
// impossible transition, keeping the last-known-good state.
type Reconstructor struct {
	AgentID string

	state HandState
}

func NewReconstructor(agentID string) *Reconstructor {
	return &Reconstructor{
		AgentID: agentID,
		state:   HandState{Phase: PhaseWaiting},
	}
}

// State returns a defensive copy of the current snapshot.
func (r *Reconstructor) State() HandState {
	return r.state.clone()
}

// OnHandStart rebuilds the state from scratch. Whatever came before is
// discarded wholesale.
func (r *Reconstructor) OnHandStart(ev *casino.HandStartEvent) {
	r.state = HandState{
		Phase:          PhasePreflop,
		CommunityCards: []Card{},
		YourCards:      CardsFromWire(ev.YourCards),
	}
}

// OnPhaseChange replaces the board and advances the street. Phases only
// move forward; re-applying the current phase is allowed (the board is
// replaced, not appended), a regression is a protocol violation.
func (r *Reconstructor) OnPhaseChange(ev *casino.PhaseChangeEvent) error {
	next := Phase(ev.Phase)
	rank, ok := phaseOrder[next]
	if !ok {
		return errors.NewProtocol(fmt.Sprintf("unknown phase %q", ev.Phase))
	}
	if rank < phaseOrder[r.state.Phase] {
		return errors.NewProtocol(fmt.Sprintf("phase regression %s -> %s", r.state.Phase, next))
	}
	r.state.Phase = next
	r.state.CommunityCards = CardsFromWire(ev.CommunityCards)
	if ev.Pot > 0 {
		r.state.Pot = ev.Pot
	}
	return nil
}

// OnTurn applies the betting update and recomputes whose turn it is by
// identity match. Pot and bets are table-global facts, so they are
// applied even when the prompt names another seat.
func (r *Reconstructor) OnTurn(ev *casino.TurnEvent) {
	r.state.Pot = ev.Pot
	r.state.CurrentBet = ev.CurrentBet
	r.state.YourBet = ev.YourBet
	r.state.YourChips = ev.YourChips
	r.state.IsYourTurn = ev.CurrentPlayer != "" && ev.CurrentPlayer == r.AgentID
}

// OnGameState rebuilds the snapshot from a full game_state payload. If
// this agent is absent from the player list it is not seated (or the
// hand has not started): no cards, zero bets and chips.
func (r *Reconstructor) OnGameState(gs *casino.GameState) {
	hand := gs.CurrentHand

	phase := Phase(hand.Phase)
	if _, ok := phaseOrder[phase]; !ok {
		if hand.Phase != "" {
			log.Warnf("game_state with unknown phase %q, keeping %q", hand.Phase, r.state.Phase)
		}
		phase = PhaseWaiting
	}

	next := HandState{
		Phase:          phase,
		Pot:            hand.Pot,
		CurrentBet:     hand.CurrentBet,
		CommunityCards: CardsFromWire(hand.CommunityCards),
		YourCards:      []Card{},
		Players:        hand.Players,
		IsYourTurn:     gs.CurrentPlayer != "" && gs.CurrentPlayer == r.AgentID,
	}

	for _, p := range hand.Players {
		if !p.IsFolded {
			next.ActivePlayers++
		}
		if p.AgentID == r.AgentID {
			next.YourBet = p.Bet
			next.YourChips = p.Chips
			next.YourCards = CardsFromWire(p.Cards)
		}
	}

	r.state = next
}
