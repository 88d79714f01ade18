package holdem

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// toPH converts a Card to the evaluator library's representation.
// Library ranks run 1..13 with ace low as 1; ours run 2..14 ace high.
func toPH(c Card) (poker.Card, error) {
	var zero poker.Card
	var s poker.Suit
	switch c.Suit {
	case Clubs:
		s = poker.Club
	case Diamonds:
		s = poker.Diamond
	case Hearts:
		s = poker.Heart
	case Spades:
		s = poker.Spade
	default:
		return zero, fmt.Errorf("unknown suit %q", c.Suit)
	}
	v := c.Value()
	if v == 0 {
		return zero, fmt.Errorf("unknown rank %q", c.Rank)
	}
	var r poker.Rank
	if v == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(v)
	}
	return poker.MakeCard(s, r)
}

// DescribeShowdown names the best hand made from our hole cards and the
// board, e.g. "Flush". Telemetry only, it never feeds the policy. At
// least a flop must be out and every card must be known.
func DescribeShowdown(hole []Card, board []Card) (string, error) {
	if len(hole) < 2 {
		return "", fmt.Errorf("need two hole cards, have %d", len(hole))
	}
	if len(board) < 3 {
		return "", fmt.Errorf("board not dealt")
	}
	all := append(append([]Card{}, hole...), board...)
	pcs := make([]poker.Card, 0, len(all))
	for _, c := range all {
		pc, err := toPH(c)
		if err != nil {
			return "", err
		}
		pcs = append(pcs, pc)
	}
	return poker.Describe(pcs)
}
