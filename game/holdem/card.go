// Package holdem holds the hand-state model, the preflop strength
// evaluator and the decision policy for the casino's no-limit hold'em
// tables. Everything here is pure logic; transport lives elsewhere.
package holdem

import (
	"strings"

	"github.com/lais-vegas/vegas/msg/casino"
)

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Card is an immutable value. The zero-ish UnknownCard stands for a
// hidden hole card belonging to another player; its rank and suit carry
// no information and must never be treated as such.
type Card struct {
	Rank string
	Suit Suit
}

func UnknownCard() Card {
	return Card{Rank: "?", Suit: "?"}
}

func (c Card) Known() bool {
	return c.Rank != "?" && c.Rank != ""
}

var rankValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8,
	"9": 9, "10": 10, "J": 11, "Q": 12, "K": 13, "A": 14,
}

// Value maps ranks to 2..14 with ace high. Unknown ranks map to 0.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

func (c Card) String() string {
	if !c.Known() {
		return "??"
	}
	sym, ok := suitSymbols[c.Suit]
	if !ok {
		sym = string(c.Suit)
	}
	return c.Rank + sym
}

// FormatCards renders a hand like "A♠ K♠", or "-" when empty.
func FormatCards(cards []Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// CardsFromWire converts server cards, turning hidden ones into
// UnknownCard.
func CardsFromWire(wire []casino.WireCard) []Card {
	out := make([]Card, 0, len(wire))
	for _, wc := range wire {
		if wc.Hidden || wc.Rank == "" {
			out = append(out, UnknownCard())
			continue
		}
		out = append(out, Card{Rank: wc.Rank, Suit: Suit(wc.Suit)})
	}
	return out
}
