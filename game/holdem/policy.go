package holdem

import (
	"fmt"
	"math/rand"
	"time"
)

// Action kinds as the action endpoint spells them.
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all_in"
)

// Decision is what the policy hands to the transport. Amount is the
// absolute raise-to total and only meaningful for ActionRaise.
// Reasoning is advisory telemetry, shown to spectators.
type Decision struct {
	Action    ActionKind
	Amount    int
	Reasoning string
}

// Policy maps a HandState to a legal action. It is deterministic except
// for explicit probability mixes drawn from Rand, which is injectable so
// tests can pin the outcome.
type Policy struct {
	Rand *rand.Rand
}

func NewPolicy(rng *rand.Rand) *Policy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Policy{Rand: rng}
}

func (p *Policy) chance(prob float64) bool {
	return p.Rand.Float64() < prob
}

// Decide never requests more chips than the stack and always attaches a
// rationale, even when there is nothing to decide yet.
func (p *Policy) Decide(state HandState) Decision {
	if len(state.YourCards) < 2 || !state.YourCards[0].Known() || !state.YourCards[1].Known() {
		return Decision{Action: ActionCheck, Reasoning: "Waiting for cards"}
	}

	tier := EvaluatePreflop(state.YourCards)
	callAmount := state.CallAmount()
	pot := state.Pot
	chips := state.YourChips

	cardsStr := FormatCards(state.YourCards)
	boardStr := FormatCards(state.CommunityCards)

	if state.Phase == PhasePreflop {
		switch tier {
		case TierPremium:
			amount := min(pot*3, chips)
			return Decision{
				Action:    ActionRaise,
				Amount:    amount,
				Reasoning: fmt.Sprintf("Premium hand (%s), raising to build pot", cardsStr),
			}

		case TierGood:
			if callAmount == 0 {
				amount := min(state.CurrentBet+pot/2, chips)
				return Decision{
					Action:    ActionRaise,
					Amount:    amount,
					Reasoning: fmt.Sprintf("Good hand (%s), raising for value", cardsStr),
				}
			}
			if float64(callAmount) <= float64(chips)*0.1 {
				return Decision{Action: ActionCall, Reasoning: fmt.Sprintf("Good hand (%s), calling small raise", cardsStr)}
			}
			return Decision{Action: ActionCall, Reasoning: fmt.Sprintf("Good hand (%s), calling", cardsStr)}

		case TierPlayable:
			if callAmount == 0 {
				if p.chance(0.3) {
					amount := min(state.CurrentBet+state.CurrentBet/2, chips)
					return Decision{
						Action:    ActionRaise,
						Amount:    amount,
						Reasoning: fmt.Sprintf("Playable hand (%s), mixing in a raise", cardsStr),
					}
				}
				return Decision{Action: ActionCheck, Reasoning: fmt.Sprintf("Playable hand (%s), checking", cardsStr)}
			}
			if float64(callAmount) <= float64(chips)*0.05 {
				return Decision{Action: ActionCall, Reasoning: fmt.Sprintf("Playable hand (%s), calling small bet", cardsStr)}
			}
			return Decision{Action: ActionFold, Reasoning: fmt.Sprintf("Playable hand (%s), but raise too big", cardsStr)}

		default: // weak
			if callAmount == 0 {
				if p.chance(0.2) {
					return Decision{Action: ActionCheck, Reasoning: fmt.Sprintf("Weak hand (%s), limping", cardsStr)}
				}
				return Decision{Action: ActionCheck, Reasoning: fmt.Sprintf("Weak hand (%s), checking", cardsStr)}
			}
			return Decision{Action: ActionFold, Reasoning: fmt.Sprintf("Weak hand (%s), folding to aggression", cardsStr)}
		}
	}

	// Postflop is intentionally strength-light: the preflop tier plus
	// price against the pot.
	if callAmount == 0 {
		if p.chance(0.3) {
			amount := min(pot/2, chips)
			return Decision{
				Action:    ActionRaise,
				Amount:    amount,
				Reasoning: fmt.Sprintf("Betting %d with board: %s", amount, boardStr),
			}
		}
		return Decision{Action: ActionCheck, Reasoning: fmt.Sprintf("Checking board: %s", boardStr)}
	}

	if float64(callAmount) <= float64(pot)*0.5 {
		if tier == TierPremium || tier == TierGood || p.chance(0.4) {
			return Decision{Action: ActionCall, Reasoning: fmt.Sprintf("Calling %d with board: %s", callAmount, boardStr)}
		}
		return Decision{Action: ActionFold, Reasoning: fmt.Sprintf("Folding to bet, board: %s", boardStr)}
	}

	if tier == TierPremium {
		return Decision{Action: ActionCall, Reasoning: fmt.Sprintf("Calling big bet with strong hand, board: %s", boardStr)}
	}
	return Decision{Action: ActionFold, Reasoning: fmt.Sprintf("Folding to big bet, board: %s", boardStr)}
}
