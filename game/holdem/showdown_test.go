package holdem

import (
	"testing"

	"github.com/lais-vegas/vegas/msg/casino"
)

func TestDescribeShowdown(t *testing.T) {
	hole := []Card{card("A", Spades), card("K", Spades)}
	board := []Card{card("Q", Spades), card("J", Spades), card("10", Spades), card("2", Clubs), card("3", Diamonds)}

	desc, err := DescribeShowdown(hole, board)
	if err != nil {
		t.Fatal(err)
	}
	if desc == "" {
		t.Fatal("expected a hand description")
	}
}

func TestDescribeShowdownFlopOnly(t *testing.T) {
	hole := []Card{card("9", Hearts), card("8", Hearts)}
	board := []Card{card("2", Clubs), card("9", Diamonds), card("K", Hearts)}

	if _, err := DescribeShowdown(hole, board); err != nil {
		t.Fatalf("five known cards should describe fine: %v", err)
	}
}

func TestDescribeShowdownInputErrors(t *testing.T) {
	board := []Card{card("2", Clubs), card("9", Diamonds), card("K", Hearts)}

	if _, err := DescribeShowdown([]Card{card("A", Spades)}, board); err == nil {
		t.Fatal("expected an error with one hole card")
	}
	if _, err := DescribeShowdown([]Card{card("A", Spades), card("K", Spades)}, board[:2]); err == nil {
		t.Fatal("expected an error before the flop")
	}
	if _, err := DescribeShowdown([]Card{UnknownCard(), card("K", Spades)}, board); err == nil {
		t.Fatal("expected an error on a hidden card")
	}
}

func TestCardFormatting(t *testing.T) {
	if got := card("A", Spades).String(); got != "A♠" {
		t.Fatalf("got %q", got)
	}
	if got := UnknownCard().String(); got != "??" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCards(nil); got != "-" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCards([]Card{card("A", Spades), card("K", Hearts)}); got != "A♠ K♥" {
		t.Fatalf("got %q", got)
	}
}

func TestCardsFromWireHidesHidden(t *testing.T) {
	cards := CardsFromWire([]casino.WireCard{
		{Rank: "A", Suit: "spades"},
		{Hidden: true},
		{Rank: ""},
	})
	if len(cards) != 3 {
		t.Fatalf("got %d cards", len(cards))
	}
	if !cards[0].Known() || cards[0].Value() != 14 {
		t.Fatalf("first card mangled: %+v", cards[0])
	}
	if cards[1].Known() || cards[2].Known() {
		t.Fatal("hidden and empty cards must come back unknown")
	}
}
