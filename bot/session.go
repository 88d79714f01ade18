// Package bot owns the play session: one agent identity, one table, one
// in-flight hand. It wires reconstructed state into the decision policy
// and answers every turn prompt it owns.
package bot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/core/log"
	"github.com/lais-vegas/vegas/core/network"
	"github.com/lais-vegas/vegas/game/holdem"
	"github.com/lais-vegas/vegas/msg/casino"
	"github.com/lais-vegas/vegas/store"
)

// ActionSender is the transport half the session talks back through.
// *client.Client satisfies it.
type ActionSender interface {
	SubmitAction(ctx context.Context, tableID, action string, amount *int, reasoning string) error
}

type Options struct {
	// AgentID is the session identity, immutable for the process lifetime.
	AgentID string
	TableID string
	Sender  ActionSender
	Policy  *holdem.Policy
	// Stats is optional; nil disables hand-history recording.
	Stats *store.Stats
	// ActionTimeout bounds one action submission. Defaults to 15s.
	ActionTimeout time.Duration
	// OnDecision, when set, observes every decision made (for display).
	OnDecision func(state holdem.HandState, d holdem.Decision)
	// OnHandDone, when set, observes every finished hand.
	OnHandDone func(won bool, ev *casino.HandResultEvent)
}

type Session struct {
	opts Options
	rec  *holdem.Reconstructor

	handsPlayed int
	handsWon    int
}

func NewSession(opts Options) (*Session, error) {
	if opts.AgentID == "" {
		return nil, errors.NewGame("session needs an agent id")
	}
	if opts.Sender == nil {
		return nil, errors.NewGame("session needs an action sender")
	}
	if opts.Policy == nil {
		opts.Policy = holdem.NewPolicy(nil)
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 15 * time.Second
	}
	return &Session{
		opts: opts,
		rec:  holdem.NewReconstructor(opts.AgentID),
	}, nil
}

// State returns the current hand snapshot, by value.
func (s *Session) State() holdem.HandState {
	return s.rec.State()
}

// Record returns hands played and hands won so far.
func (s *Session) Record() (int, int) {
	return s.handsPlayed, s.handsWon
}

// Bind registers the session's event handlers on the dispatcher. Events
// arrive one at a time in server-send order; all state mutation happens
// on the dispatch goroutine.
func (s *Session) Bind(d *network.Dispatcher) {
	d.On(casino.EventHandStart, s.onHandStart)
	d.On(casino.EventPhaseChange, s.onPhaseChange)
	d.On(casino.EventTurn, s.onTurn)
	d.On(casino.EventActionRequired, s.onActionRequired)
	d.On(casino.EventGameState, s.onGameState)
	d.On(casino.EventHandResult, s.onHandResult)
	d.On(casino.EventChatMessage, s.onChat)
	d.On(casino.EventError, s.onError)
}

func (s *Session) onHandStart(data json.RawMessage) {
	ev := &casino.HandStartEvent{}
	if err := json.Unmarshal(data, ev); err != nil {
		log.Errorf("bad hand_start payload: %v", err)
		return
	}
	s.rec.OnHandStart(ev)
	log.Infof("hand %s started, cards: %s", ev.HandID, holdem.FormatCards(s.rec.State().YourCards))
}

func (s *Session) onPhaseChange(data json.RawMessage) {
	ev := &casino.PhaseChangeEvent{}
	if err := json.Unmarshal(data, ev); err != nil {
		log.Errorf("bad phase_change payload: %v", err)
		return
	}
	if err := s.rec.OnPhaseChange(ev); err != nil {
		// Last-known-good state is preserved; the session keeps going.
		log.Warnf("phase event dropped: %v", err)
	}
}

func (s *Session) onTurn(data json.RawMessage) {
	ev := &casino.TurnEvent{}
	if err := json.Unmarshal(data, ev); err != nil {
		log.Errorf("bad turn payload: %v", err)
		return
	}
	s.rec.OnTurn(ev)
	s.actIfPrompted()
}

func (s *Session) onActionRequired(data json.RawMessage) {
	gs := &casino.GameState{}
	if err := json.Unmarshal(data, gs); err != nil {
		log.Errorf("bad action_required payload: %v", err)
		return
	}
	s.rec.OnGameState(gs)
	s.actIfPrompted()
}

func (s *Session) onGameState(data json.RawMessage) {
	gs := &casino.GameState{}
	if err := json.Unmarshal(data, gs); err != nil {
		log.Errorf("bad game_state payload: %v", err)
		return
	}
	s.rec.OnGameState(gs)
	st := s.rec.State()
	log.Debugf("state: %s, pot=%d, players=%d", st.Phase, st.Pot, len(st.Players))
}

// actIfPrompted runs the policy when, and only when, the snapshot says
// the turn is ours.
func (s *Session) actIfPrompted() {
	state := s.rec.State()
	if !state.IsYourTurn {
		return
	}

	d := s.opts.Policy.Decide(state)
	if s.opts.OnDecision != nil {
		s.opts.OnDecision(state, d)
	}
	log.Infof("decision: %s %d (%s)", d.Action, d.Amount, d.Reasoning)

	var amount *int
	if d.Action == holdem.ActionRaise {
		amount = &d.Amount
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ActionTimeout)
	defer cancel()
	if err := s.opts.Sender.SubmitAction(ctx, s.opts.TableID, string(d.Action), amount, d.Reasoning); err != nil {
		if errors.IsGame(err) {
			log.Warnf("action rejected: %v", err)
			return
		}
		log.Errorf("action submit failed: %v", err)
	}
}

func (s *Session) onHandResult(data json.RawMessage) {
	ev := &casino.HandResultEvent{}
	if err := json.Unmarshal(data, ev); err != nil {
		log.Errorf("bad hand_result payload: %v", err)
		return
	}

	s.handsPlayed++
	won := false
	amount := 0
	for _, w := range ev.Winners {
		if w.AgentID == s.opts.AgentID {
			won = true
			amount += w.Amount
		}
	}
	if won {
		s.handsWon++
	}

	// The closing state is only read here; the next hand_start replaces it.
	state := s.rec.State()
	board := state.CommunityCards
	if len(ev.CommunityCards) > 0 {
		board = holdem.CardsFromWire(ev.CommunityCards)
	}
	showdown := ""
	if desc, err := holdem.DescribeShowdown(state.YourCards, board); err == nil {
		showdown = desc
	}

	log.Infof("hand over: won=%v pot=%d record=%d/%d %s", won, ev.Pot, s.handsWon, s.handsPlayed, showdown)

	if s.opts.Stats != nil {
		rec := &store.HandRecord{
			TableID:  s.opts.TableID,
			HandID:   ev.HandID,
			Pot:      ev.Pot,
			Won:      won,
			Amount:   amount,
			Showdown: showdown,
			Result:   append([]byte(nil), data...),
		}
		if err := s.opts.Stats.RecordHand(rec); err != nil {
			log.Errorf("record hand: %v", err)
		}
	}

	if s.opts.OnHandDone != nil {
		s.opts.OnHandDone(won, ev)
	}
}

func (s *Session) onChat(data json.RawMessage) {
	msg := &casino.ChatMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		return
	}
	log.Infof("chat %s: %s", msg.AgentName, msg.Content)
}

func (s *Session) onError(data json.RawMessage) {
	ev := &casino.ErrorEvent{}
	if err := json.Unmarshal(data, ev); err != nil || ev.Error == "" {
		log.Errorf("server error: %s", string(data))
		return
	}
	log.Errorf("server error: %s", ev.Error)
}
