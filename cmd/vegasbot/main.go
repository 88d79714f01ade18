package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/lais-vegas/vegas/bot"
	"github.com/lais-vegas/vegas/client"
	"github.com/lais-vegas/vegas/conf"
	"github.com/lais-vegas/vegas/core/errors"
	"github.com/lais-vegas/vegas/core/log"
	"github.com/lais-vegas/vegas/core/network"
	"github.com/lais-vegas/vegas/core/utils/signal"
	"github.com/lais-vegas/vegas/store"
)

var (
	Name       string = "vegasbot"
	Version    string = "unknow"
	GitCommit  string = "unknow"
	BuildAt    string = "unknow"
	BuildBy    string = runtime.Version()
	RunnningOS string = runtime.GOOS + "/" + runtime.GOARCH
)

const CredentialsFile = "agent_credentials.json"

func longVersion() string {
	buf := bytes.NewBuffer(nil)
	fmt.Fprintln(buf, "project:", Name)
	fmt.Fprintln(buf, "version:", Version)
	fmt.Fprintln(buf, "git commit:", GitCommit)
	fmt.Fprintln(buf, "build at:", BuildAt)
	fmt.Fprintln(buf, "build by:", BuildBy)
	fmt.Fprintln(buf, "running OS/Arch:", RunnningOS)
	return buf.String()
}

func main() {
	godotenv.Load()

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(longVersion())
	}
	app := cli.NewApp()
	app.Version = Version
	app.Name = Name
	app.Usage = "poker agent for the LAIS Vegas casino"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "config file path"},
		&cli.StringFlag{Name: "url", Usage: "server base url"},
		&cli.StringFlag{Name: "api-key", Usage: "agent api key", EnvVars: []string{"LAIS_API_KEY"}},
		&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "register",
			Usage: "register a new agent (solves the proof-of-work challenge)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true},
				&cli.StringFlag{Name: "description"},
			},
			Action: runRegister,
		},
		{
			Name:  "play",
			Usage: "join a table and play until interrupted",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "table", Usage: "table to join"},
				&cli.IntFlag{Name: "buy-in", Usage: "buy-in amount"},
			},
			Action: runPlay,
		},
		{
			Name:   "tables",
			Usage:  "list available tables",
			Flags:  []cli.Flag{&cli.StringFlag{Name: "tier"}},
			Action: runTables,
		},
		{
			Name:   "leaderboard",
			Usage:  "show the casino leaderboard",
			Flags:  []cli.Flag{&cli.StringFlag{Name: "sort", Value: "chips"}},
			Action: runLeaderboard,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConf(c *cli.Context) (*conf.Config, error) {
	cfg := *conf.DefaultConf
	if fname := c.String("config"); fname != "" {
		loaded, err := conf.ConfInit(fname, c.Bool("debug"))
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if v := c.String("url"); v != "" {
		cfg.BaseURL = v
	}
	if v := c.String("api-key"); v != "" {
		cfg.APIKey = v
	}
	if c.Bool("debug") {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if v := c.String("table"); c.IsSet("table") && v != "" {
		cfg.Table = v
	}
	if c.IsSet("buy-in") {
		cfg.BuyIn = c.Int("buy-in")
	}
	log.SetLevel(cfg.LogLevel)
	return &cfg, nil
}

type credentials struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

func loadCredentials() (*credentials, error) {
	raw, err := os.ReadFile(CredentialsFile)
	if err != nil {
		return nil, err
	}
	out := &credentials{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func runRegister(c *cli.Context) error {
	cfg, err := loadConf(c)
	if err != nil {
		return err
	}

	api := client.New(client.Options{BaseURL: cfg.BaseURL, Debug: cfg.Debug})
	fmt.Printf("registering agent %q, solving challenge...\n", c.String("name"))

	agent, err := api.Register(c.Context, c.String("name"), c.String("description"))
	if err != nil {
		return err
	}

	raw, _ := json.MarshalIndent(credentials{Name: agent.Name, APIKey: agent.APIKey}, "", "  ")
	if err := os.WriteFile(CredentialsFile, raw, 0600); err != nil {
		return err
	}

	styleRegistered(agent, CredentialsFile)
	return nil
}

func runPlay(c *cli.Context) error {
	cfg, err := loadConf(c)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		if creds, err := loadCredentials(); err == nil {
			cfg.APIKey = creds.APIKey
			fmt.Printf("loaded credentials for %s\n", creds.Name)
		}
	}
	if cfg.APIKey == "" {
		return errors.NewAuth("no api key: use --api-key, LAIS_API_KEY or register first")
	}

	api := client.New(client.Options{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Debug: cfg.Debug})
	profile, err := api.Profile(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("agent: %s, chips: %d\n", profile.Name, profile.Chips)

	if _, err := api.JoinTable(c.Context, cfg.Table, cfg.BuyIn, -1); err != nil {
		if errors.IsGame(err) && strings.Contains(strings.ToLower(err.Error()), "already at this table") {
			fmt.Println("already at table")
		} else {
			return err
		}
	}

	var stats *store.Stats
	if cfg.StatsDB != "" {
		if stats, err = store.Open(cfg.StatsDB); err != nil {
			log.Warnf("stats store disabled: %v", err)
			stats = nil
		} else {
			defer stats.Close()
		}
	}

	session, err := bot.NewSession(bot.Options{
		AgentID:    api.AgentID,
		TableID:    cfg.Table,
		Sender:     api,
		Stats:      stats,
		OnDecision: styleDecision,
		OnHandDone: styleHandDone,
	})
	if err != nil {
		return err
	}

	dispatcher := network.NewDispatcher()
	session.Bind(dispatcher)

	wsc := network.NewWSClient(network.WSClientOptions{
		RemoteAddress:  wsAddress(cfg.BaseURL),
		APIKey:         cfg.APIKey,
		TableID:        cfg.Table,
		ReconnectDelay: 3 * time.Second,
		OnEvent:        dispatcher.Dispatch,
		OnStatus: func(enable bool) {
			log.Infof("realtime connection: %v", enable)
		},
	})
	if err := wsc.Start(); err != nil {
		return err
	}
	defer wsc.Close()

	fmt.Printf("bot is running at table %s, ctrl-c to stop\n", cfg.Table)
	s := signal.WaitShutdown()
	log.Infof("recv signal: %v", s.String())

	if result, err := api.LeaveTable(context.Background(), cfg.Table); err == nil {
		fmt.Printf("left table, chips returned: %d\n", result.ChipsReturned)
	} else {
		log.Warnf("leave table: %v", err)
	}

	played, won := session.Record()
	styleSummary(played, won, stats, cfg.Table)
	return nil
}

func runTables(c *cli.Context) error {
	cfg, err := loadConf(c)
	if err != nil {
		return err
	}
	api := client.New(client.Options{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Debug: cfg.Debug})
	tables, err := api.ListTables(c.Context, c.String("tier"))
	if err != nil {
		return err
	}
	return styleTables(tables)
}

func runLeaderboard(c *cli.Context) error {
	cfg, err := loadConf(c)
	if err != nil {
		return err
	}
	api := client.New(client.Options{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Debug: cfg.Debug})
	entries, err := api.Leaderboard(c.Context, c.String("sort"), 50, "")
	if err != nil {
		return err
	}
	return styleLeaderboard(entries)
}

// wsAddress maps the REST base url onto the realtime endpoint.
func wsAddress(baseURL string) string {
	addr := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(addr, "https://"):
		addr = "wss://" + strings.TrimPrefix(addr, "https://")
	case strings.HasPrefix(addr, "http://"):
		addr = "ws://" + strings.TrimPrefix(addr, "http://")
	}
	return addr + "/ws"
}
