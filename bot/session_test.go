package bot

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/core/network"
	"github.com/lais-vegas/vegas/game/holdem"
	"github.com/lais-vegas/vegas/msg/casino"
)

type sentAction struct {
	TableID   string
	Action    string
	Amount    *int
	Reasoning string
}

type fakeSender struct {
	sent []sentAction
	err  error
}

func (f *fakeSender) SubmitAction(ctx context.Context, tableID, action string, amount *int, reasoning string) error {
	f.sent = append(f.sent, sentAction{TableID: tableID, Action: action, Amount: amount, Reasoning: reasoning})
	return f.err
}

func newTestSession(t *testing.T, sender *fakeSender) (*Session, *network.Dispatcher) {
	t.Helper()
	s, err := NewSession(Options{
		AgentID: "me",
		TableID: "bronze-1",
		Sender:  sender,
		Policy:  holdem.NewPolicy(rand.New(rand.NewSource(1))),
	})
	if err != nil {
		t.Fatal(err)
	}
	d := network.NewDispatcher()
	s.Bind(d)
	return s, d
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewSessionValidation(t *testing.T) {
	if _, err := NewSession(Options{TableID: "t", Sender: &fakeSender{}}); !errors.IsGame(err) {
		t.Fatalf("missing agent id should fail, got %v", err)
	}
	if _, err := NewSession(Options{AgentID: "me"}); !errors.IsGame(err) {
		t.Fatalf("missing sender should fail, got %v", err)
	}
}

func TestSessionRaisesPremiumOnOwnTurn(t *testing.T) {
	sender := &fakeSender{}
	_, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, raw(t, casino.HandStartEvent{
		HandID:    "h1",
		YourCards: []casino.WireCard{{Rank: "A", Suit: "spades"}, {Rank: "K", Suit: "spades"}},
	}))
	d.Dispatch(casino.EventTurn, raw(t, casino.TurnEvent{
		Pot: 100, CurrentBet: 0, YourBet: 0, YourChips: 900, CurrentPlayer: "me",
	}))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one action, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.TableID != "bronze-1" || got.Action != "raise" {
		t.Fatalf("unexpected action: %+v", got)
	}
	if got.Amount == nil || *got.Amount != 300 {
		t.Fatalf("expected raise to 300, got %+v", got.Amount)
	}
	if got.Reasoning == "" {
		t.Fatal("reasoning must accompany the action")
	}
}

func TestSessionStaysQuietOnOthersTurn(t *testing.T) {
	sender := &fakeSender{}
	_, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, raw(t, casino.HandStartEvent{
		YourCards: []casino.WireCard{{Rank: "A", Suit: "spades"}, {Rank: "A", Suit: "hearts"}},
	}))
	d.Dispatch(casino.EventTurn, raw(t, casino.TurnEvent{
		Pot: 100, CurrentPlayer: "villain",
	}))

	if len(sender.sent) != 0 {
		t.Fatalf("acted out of turn: %+v", sender.sent)
	}
}

func TestSessionFoldWithoutAmount(t *testing.T) {
	sender := &fakeSender{}
	_, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, raw(t, casino.HandStartEvent{
		YourCards: []casino.WireCard{{Rank: "7", Suit: "clubs"}, {Rank: "2", Suit: "diamonds"}},
	}))
	d.Dispatch(casino.EventTurn, raw(t, casino.TurnEvent{
		Pot: 100, CurrentBet: 50, YourChips: 900, CurrentPlayer: "me",
	}))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one action, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.Action != "fold" {
		t.Fatalf("expected fold, got %s", got.Action)
	}
	if got.Amount != nil {
		t.Fatal("non-raise actions must not carry an amount")
	}
}

func TestSessionActionRequiredSnapshot(t *testing.T) {
	sender := &fakeSender{}
	_, d := newTestSession(t, sender)

	d.Dispatch(casino.EventActionRequired, raw(t, casino.GameState{
		CurrentHand: casino.Hand{
			Phase:      "preflop",
			Pot:        100,
			CurrentBet: 20,
			Players: []casino.Player{
				{AgentID: "me", Chips: 980, Bet: 20,
					Cards: []casino.WireCard{{Rank: "J", Suit: "clubs"}, {Rank: "J", Suit: "spades"}}},
				{AgentID: "villain", Chips: 900, Bet: 20},
			},
		},
		CurrentPlayer: "me",
	}))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one action, got %d", len(sender.sent))
	}
	if got := sender.sent[0]; got.Action != "raise" || *got.Amount != 70 {
		t.Fatalf("expected raise to 70, got %+v", got)
	}
}

func TestSessionSurvivesRejectedAction(t *testing.T) {
	sender := &fakeSender{err: errors.NewGame("not your turn")}
	s, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, raw(t, casino.HandStartEvent{
		YourCards: []casino.WireCard{{Rank: "A", Suit: "spades"}, {Rank: "A", Suit: "hearts"}},
	}))
	d.Dispatch(casino.EventTurn, raw(t, casino.TurnEvent{
		Pot: 100, YourChips: 900, CurrentPlayer: "me",
	}))

	if len(sender.sent) != 1 {
		t.Fatalf("expected the attempt to be made, got %d", len(sender.sent))
	}
	// Session state is intact and keeps processing events.
	d.Dispatch(casino.EventHandResult, raw(t, casino.HandResultEvent{Pot: 100}))
	if played, _ := s.Record(); played != 1 {
		t.Fatalf("expected 1 hand played, got %d", played)
	}
}

func TestSessionHandResultBookkeeping(t *testing.T) {
	sender := &fakeSender{}
	s, d := newTestSession(t, sender)

	var doneWon []bool
	s.opts.OnHandDone = func(won bool, ev *casino.HandResultEvent) {
		doneWon = append(doneWon, won)
	}

	d.Dispatch(casino.EventHandResult, raw(t, casino.HandResultEvent{
		HandID: "h1", Pot: 300,
		Winners: []casino.Winner{{AgentID: "me", Amount: 300}},
	}))
	d.Dispatch(casino.EventHandResult, raw(t, casino.HandResultEvent{
		HandID: "h2", Pot: 120,
		Winners: []casino.Winner{{AgentID: "villain", Amount: 120}},
	}))

	played, won := s.Record()
	if played != 2 || won != 1 {
		t.Fatalf("record %d/%d, want 2/1", won, played)
	}
	if len(doneWon) != 2 || !doneWon[0] || doneWon[1] {
		t.Fatalf("OnHandDone saw %v", doneWon)
	}
}

func TestSessionDropsPhaseRegression(t *testing.T) {
	sender := &fakeSender{}
	s, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, raw(t, casino.HandStartEvent{
		YourCards: []casino.WireCard{{Rank: "A", Suit: "spades"}, {Rank: "K", Suit: "spades"}},
	}))
	board := []casino.WireCard{{Rank: "2", Suit: "clubs"}, {Rank: "9", Suit: "diamonds"}, {Rank: "K", Suit: "hearts"}, {Rank: "5", Suit: "spades"}}
	d.Dispatch(casino.EventPhaseChange, raw(t, casino.PhaseChangeEvent{Phase: "turn", CommunityCards: board, Pot: 80}))
	d.Dispatch(casino.EventPhaseChange, raw(t, casino.PhaseChangeEvent{Phase: "flop", CommunityCards: board[:3]}))

	st := s.State()
	if st.Phase != holdem.PhaseTurn || len(st.CommunityCards) != 4 {
		t.Fatalf("regression mutated state: %+v", st)
	}
}

func TestSessionIgnoresMalformedPayloads(t *testing.T) {
	sender := &fakeSender{}
	s, d := newTestSession(t, sender)

	d.Dispatch(casino.EventHandStart, json.RawMessage(`{"your_cards": 12}`))
	d.Dispatch(casino.EventTurn, json.RawMessage(`not json`))
	d.Dispatch(casino.EventHandResult, json.RawMessage(`[]`))

	if len(sender.sent) != 0 {
		t.Fatalf("acted on garbage: %+v", sender.sent)
	}
	if played, _ := s.Record(); played != 0 {
		t.Fatal("garbage counted as a hand")
	}
}
