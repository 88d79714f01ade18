package holdem

// Tier is the coarse preflop strength bucket the policy branches on.
type Tier int8

const (
	TierWeak Tier = iota
	TierPlayable
	TierGood
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierGood:
		return "good"
	case TierPlayable:
		return "playable"
	default:
		return "weak"
	}
}

// EvaluatePreflop scores a two-card holding. Rules are tested in
// precedence order and the first match wins, so pocket queens are
// premium, not good. Any unknown card, or fewer than two cards, is weak.
//
// Postflop play reuses this preflop tier unchanged; postflop decisions
// are price driven on purpose.
func EvaluatePreflop(cards []Card) Tier {
	if len(cards) < 2 || !cards[0].Known() || !cards[1].Known() {
		return TierWeak
	}

	c1, c2 := cards[0], cards[1]
	r1, r2 := c1.Value(), c2.Value()

	isPair := c1.Rank == c2.Rank
	isSuited := c1.Suit == c2.Suit
	high, low := r1, r2
	if low > high {
		high, low = low, high
	}
	gap := high - low

	// Premium: QQ+ and AKs.
	if isPair && high >= 12 {
		return TierPremium
	}
	if high == 14 && low == 13 && isSuited {
		return TierPremium
	}

	// Good: TT+, AQ+.
	if isPair && high >= 10 {
		return TierGood
	}
	if high == 14 && low >= 12 {
		return TierGood
	}

	// Playable: medium pairs, suited connectors, suited aces.
	if isPair && high >= 7 {
		return TierPlayable
	}
	if isSuited && gap <= 2 && high >= 8 {
		return TierPlayable
	}
	if isSuited && high == 14 {
		return TierPlayable
	}

	return TierWeak
}
