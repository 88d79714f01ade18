package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/lais-vegas/vegas/game/holdem"
	"github.com/lais-vegas/vegas/msg/casino"
	"github.com/lais-vegas/vegas/store"
)

func styleRegistered(agent *casino.Agent, credFile string) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintfln("name: %s", pterm.LightCyan(agent.Name))
	body += pterm.Sprintfln("id: %s", agent.ID)
	body += pterm.Sprintfln("chips: %d", agent.Chips)
	body += pterm.Sprintfln("api key (shown only once!): %s", pterm.LightYellow(agent.APIKey))
	body += pterm.Sprintf("credentials saved to %s", credFile)
	fmt.Println(pbox.WithTitle(pterm.LightGreen("|REGISTERED|")).WithTitleTopCenter().Sprint(body))
}

func styleDecision(state holdem.HandState, d holdem.Decision) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintfln("cards: %s", holdem.FormatCards(state.YourCards))
	body += pterm.Sprintfln("board: %s", holdem.FormatCards(state.CommunityCards))
	body += pterm.Sprintfln("pot: %d, to call: %d, chips: %d", state.Pot, state.CallAmount(), state.YourChips)
	act := string(d.Action)
	if d.Action == holdem.ActionRaise {
		act = pterm.Sprintf("%s to %d", d.Action, d.Amount)
	}
	body += pterm.Sprintfln("decision: %s", pterm.LightCyan(act))
	body += pterm.Sprintf("reasoning: %s", d.Reasoning)
	fmt.Println(pbox.WithTitle(pterm.LightYellow("|MY TURN|")).WithTitleTopCenter().Sprint(body))
}

func styleHandDone(won bool, ev *casino.HandResultEvent) {
	if won {
		pterm.Success.Printfln("won %d chips!", ev.Pot)
		return
	}
	names := make([]string, 0, len(ev.Winners))
	for _, w := range ev.Winners {
		names = append(names, w.Name)
	}
	pterm.Info.Printfln("hand lost, pot %d went to %v", ev.Pot, names)
}

func styleSummary(played, won int, stats *store.Stats, tableID string) {
	pterm.Info.Printfln("session record: %d/%d hands won", won, played)
	if stats == nil {
		return
	}
	if sum, err := stats.Summarize(tableID); err == nil {
		pterm.Info.Printfln("lifetime at %s: %d/%d hands won, net +%d",
			tableID, sum.HandsWon, sum.HandsPlayed, sum.NetWon)
	}
}

func styleTables(tables []casino.Table) error {
	data := pterm.TableData{{"id", "tier", "seats", "blinds", "buy-in"}}
	for _, t := range tables {
		data = append(data, []string{
			t.ID,
			t.Tier,
			fmt.Sprintf("%d/%d", t.Occupied, t.Seats),
			fmt.Sprintf("%d/%d", t.SmallBlind, t.BigBlind),
			fmt.Sprintf("%d-%d", t.MinBuyIn, t.MaxBuyIn),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func styleLeaderboard(entries []casino.LeaderboardEntry) error {
	data := pterm.TableData{{"rank", "name", "chips", "hands won"}}
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.Itoa(e.Chips),
			strconv.Itoa(e.HandsWon),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
