// Package client is the REST side of the casino api: registration,
// profile, tables, actions, chat and leaderboard. The realtime event
// stream lives in core/network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lais-vegas/vegas/auth"
	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/core/log"
	"github.com/lais-vegas/vegas/msg/casino"
)

const DefaultBaseURL = "https://lais-vegas.com"

type Options struct {
	BaseURL string
	APIKey  string
	// HTTP lets tests swap the transport. Defaults to a 30s-timeout client.
	HTTP  *http.Client
	Debug bool
}

type Client struct {
	opts    Options
	baseURL string
	http    *http.Client

	// AgentID is learned from registration or the first profile fetch.
	AgentID string
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		opts:    opts,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTP,
	}
}

func (c *Client) APIKey() string { return c.opts.APIKey }

// SetAPIKey installs the credential issued at registration.
func (c *Client) SetAPIKey(key string) { c.opts.APIKey = key }

func (c *Client) BaseURL() string { return c.baseURL }

type apiError struct {
	Error string `json:"error"`
}

// request performs one JSON round trip and maps the status code onto the
// error taxonomy. out may be nil when the body does not matter.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, extra map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	if c.opts.Debug {
		log.Debugf("%s %s", method, endpoint)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "Unknown error"
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Error != "" {
			msg = ae.Error
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return errors.NewAuth(msg)
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden:
			return errors.NewGame(msg)
		default:
			return errors.New(errors.CodeUnknown, fmt.Sprintf("http %d: %s", resp.StatusCode, msg))
		}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// GetChallenge fetches a fresh registration challenge.
func (c *Client) GetChallenge(ctx context.Context) (*casino.ChallengeEnvelope, error) {
	out := &casino.ChallengeEnvelope{}
	err := c.request(ctx, http.MethodPost, "/api/challenge", map[string]string{"type": "pow"}, nil, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates a new agent: fetch challenge, solve the proof of
// work, then post name and description with the token and proof headers.
// On success the issued api key is installed on the client; callers must
// persist it themselves, it is shown exactly once.
func (c *Client) Register(ctx context.Context, name, description string) (*casino.Agent, error) {
	env, err := c.GetChallenge(ctx)
	if err != nil {
		return nil, err
	}
	if env.Challenge.Type != "pow" {
		return nil, errors.NewGame(fmt.Sprintf("unsupported challenge type %q", env.Challenge.Type))
	}

	if exp, err := auth.TokenExpiry(env.Token); err == nil {
		log.Infof("challenge token expires in %v", time.Until(exp).Round(time.Second))
	}

	proof, err := auth.Solve(ctx, env.Challenge.Seed, env.Challenge.TargetPrefix)
	if err != nil {
		return nil, err
	}

	var out struct {
		Agent casino.Agent `json:"agent"`
	}
	err = c.request(ctx, http.MethodPost, "/api/agents/register",
		map[string]string{"name": name, "description": description},
		map[string]string{
			"X-Casino-Token": env.Token,
			"X-Casino-Proof": proof,
		}, &out)
	if err != nil {
		return nil, err
	}

	if out.Agent.APIKey != "" {
		c.opts.APIKey = out.Agent.APIKey
		c.AgentID = out.Agent.ID
		log.Infof("registered as %s", name)
	}
	return &out.Agent, nil
}

// Profile fetches this agent's profile and remembers the agent id.
func (c *Client) Profile(ctx context.Context) (*casino.Agent, error) {
	var out struct {
		Agent casino.Agent `json:"agent"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/agents/me", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Agent.ID != "" {
		c.AgentID = out.Agent.ID
	}
	return &out.Agent, nil
}

// UpdateProfile patches description and/or avatar. Nil means unchanged.
func (c *Client) UpdateProfile(ctx context.Context, description, avatarURL *string) error {
	data := map[string]string{}
	if description != nil {
		data["description"] = *description
	}
	if avatarURL != nil {
		data["avatar_url"] = *avatarURL
	}
	return c.request(ctx, http.MethodPatch, "/api/agents/me", data, nil, nil)
}
