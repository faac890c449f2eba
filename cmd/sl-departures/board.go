package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/sl-departures/config"
	"github.com/theoremus-urban-solutions/sl-departures/departures"
	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

// buildGroup maps configured boards onto engine boards sharing one client.
func buildGroup(cfg *config.AppConfig) (*departures.Group, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
		}
	}

	opts := []sl.Option{}
	if cfg.API.BaseURL != "" {
		opts = append(opts, sl.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.TimeoutMS > 0 {
		opts = append(opts, sl.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.API.TimeoutMS) * time.Millisecond,
		}))
	}
	client := sl.NewClient(opts...)

	group := departures.NewGroup()
	for _, b := range cfg.Boards {
		modes := make([]departures.Mode, 0, len(b.TransportModes))
		for _, m := range b.TransportModes {
			modes = append(modes, departures.Mode(m))
		}
		board := departures.NewBoard(departures.BoardConfig{
			Name:          b.Name,
			SiteID:        b.SiteID,
			SiteName:      b.SiteName,
			Filter:        departures.NewFilterSpec(modes, b.DirectionCode, b.LineFilter),
			DirectionName: b.DirectionName,
			Interval:      time.Duration(b.ScanInterval) * time.Second,
			Slots:         b.NumDepartures,
			Policy:        departures.Policy(b.Policy),
			Location:      loc,
		}, client)
		if err := group.Add(board); err != nil {
			return nil, err
		}
	}
	return group, nil
}

func printBoard(b *departures.Board, now time.Time) {
	cfg := b.Config()
	fmt.Printf("%s\n", cfg.Title())

	var list []sl.Departure
	if snap := b.Snapshot(); snap != nil {
		list = snap.Departures
	}
	view := b.View()

	switch cfg.Policy {
	case departures.PolicyNext:
		printNextState(view.Next(list, now))
	case departures.PolicyNextActive:
		printNextState(view.NextActive(list, now))
	default:
		for _, slot := range view.AllSlots(list, now) {
			if !slot.Available {
				fmt.Printf("  %-4s -\n", slot.Label)
				continue
			}
			printSlot(slot)
		}
	}
}

func printSlot(slot departures.SlotState) {
	a := slot.Attributes
	line := fmt.Sprintf("  %-4s %-5s %-24s %s", slot.Label, a.Line, a.Destination, slot.Value)
	if a.Canceled {
		line += "  CANCELLED"
	} else if a.DelayMinutes > 0 {
		line += fmt.Sprintf("  +%d min", a.DelayMinutes)
	}
	fmt.Println(line)
	for _, msg := range a.Deviations {
		fmt.Printf("       ! %s\n", msg)
	}
}

func printNextState(s departures.NextState) {
	if !s.Available {
		fmt.Println("  no departures")
		return
	}
	if s.Value != "" {
		fmt.Printf("  %s\n", s.Value)
	}
	for _, a := range s.Upcoming {
		marker := " "
		if a.Canceled {
			marker = "x"
		}
		fmt.Printf("  %s %-5s %-24s %s\n", marker, a.Line, a.Destination, a.TimeFormatted)
	}
}

func boardCommand() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Render every configured board once and exit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Configuration file path"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			group, err := buildGroup(cfg)
			if err != nil {
				return err
			}
			if err := group.Start(c.Context); err != nil {
				return err
			}
			defer group.Close()

			now := time.Now()
			for _, b := range group.Boards() {
				printBoard(b, now)
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll the configured boards and re-render on every refresh",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Configuration file path"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			group, err := buildGroup(cfg)
			if err != nil {
				return err
			}

			for _, b := range group.Boards() {
				b.Subscribe(func(u departures.Update) {
					if u.Err != nil {
						fmt.Printf("%s: refresh failed: %v (showing stale data)\n", u.Board, u.Err)
						return
					}
					printBoard(group.Board(u.Board), time.Now())
				})
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := group.Start(ctx); err != nil {
				return err
			}
			defer group.Close()

			now := time.Now()
			for _, b := range group.Boards() {
				printBoard(b, now)
			}

			<-ctx.Done()
			return nil
		},
	}
}
