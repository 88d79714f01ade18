package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/msg/casino"
)

// ListTables lists tables, optionally filtered by tier.
func (c *Client) ListTables(ctx context.Context, tier string) ([]casino.Table, error) {
	endpoint := "/api/tables"
	if tier != "" {
		endpoint += "?tier=" + url.QueryEscape(tier)
	}
	var out struct {
		Tables []casino.Table `json:"tables"`
	}
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

// GetTable fetches one table's detailed state.
func (c *Client) GetTable(ctx context.Context, tableID string) (*casino.Table, error) {
	var out struct {
		Table casino.Table `json:"table"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/tables/"+url.PathEscape(tableID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Table, nil
}

type JoinResult struct {
	Seat  int `json:"seat"`
	Chips int `json:"chips"`
}

// JoinTable buys into a table; seat < 0 lets the server pick one.
func (c *Client) JoinTable(ctx context.Context, tableID string, buyIn int, seat int) (*JoinResult, error) {
	data := map[string]int{"buy_in": buyIn}
	if seat >= 0 {
		data["seat"] = seat
	}
	out := &JoinResult{}
	err := c.request(ctx, http.MethodPost, "/api/tables/"+url.PathEscape(tableID)+"/join", data, nil, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type LeaveResult struct {
	ChipsReturned int `json:"chips_returned"`
}

// LeaveTable stands up and returns the remaining chips.
func (c *Client) LeaveTable(ctx context.Context, tableID string) (*LeaveResult, error) {
	if tableID == "" {
		return nil, errors.NewGame("no table specified")
	}
	out := &LeaveResult{}
	err := c.request(ctx, http.MethodPost, "/api/tables/"+url.PathEscape(tableID)+"/leave", nil, nil, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type actionRequest struct {
	Action    string `json:"action"`
	Amount    *int   `json:"amount,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// SubmitAction posts one game action. amount is the absolute raise-to
// total, required only for raise.
func (c *Client) SubmitAction(ctx context.Context, tableID, action string, amount *int, reasoning string) error {
	if tableID == "" {
		return errors.NewGame("no table specified")
	}
	data := actionRequest{Action: action, Amount: amount, Reasoning: reasoning}
	return c.request(ctx, http.MethodPost, "/api/tables/"+url.PathEscape(tableID)+"/action", data, nil, nil)
}

// GetChat fetches chat history, newest last.
func (c *Client) GetChat(ctx context.Context, tableID string, limit int) ([]casino.ChatMessage, error) {
	if tableID == "" {
		return nil, errors.NewGame("no table specified")
	}
	if limit <= 0 {
		limit = 50
	}
	var out struct {
		Messages []casino.ChatMessage `json:"messages"`
	}
	endpoint := fmt.Sprintf("/api/tables/%s/chat?limit=%d", url.PathEscape(tableID), limit)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendChat posts a table chat message.
func (c *Client) SendChat(ctx context.Context, tableID, content string) error {
	if tableID == "" {
		return errors.NewGame("no table specified")
	}
	return c.request(ctx, http.MethodPost, "/api/tables/"+url.PathEscape(tableID)+"/chat",
		map[string]string{"content": content}, nil, nil)
}

// Leaderboard fetches the ranking, sorted by the given column
// ("chips" or "hands_won").
func (c *Client) Leaderboard(ctx context.Context, sort string, limit int, tier string) ([]casino.LeaderboardEntry, error) {
	if sort == "" {
		sort = "chips"
	}
	if limit <= 0 {
		limit = 50
	}
	endpoint := fmt.Sprintf("/api/leaderboard?sort=%s&limit=%d", url.QueryEscape(sort), limit)
	if tier != "" {
		endpoint += "&tier=" + url.QueryEscape(tier)
	}
	var out struct {
		Leaderboard []casino.LeaderboardEntry `json:"leaderboard"`
	}
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}
