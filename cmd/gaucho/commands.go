package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gauchoeats/gaucho/internal/chat"
	"github.com/gauchoeats/gaucho/internal/config"
	"github.com/gauchoeats/gaucho/internal/gateway"
	"github.com/gauchoeats/gaucho/internal/history"
	"github.com/gauchoeats/gaucho/internal/menu"
	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/internal/preferences"
	"github.com/gauchoeats/gaucho/internal/waittime"
	"github.com/gauchoeats/gaucho/internal/wrapped"
)

var errUnknownCommand = errors.New("unknown command")

type app struct {
	cfg    *config.ClientConfig
	client *gateway.Client
	log    *slog.Logger
	in     io.Reader
	out    io.Writer
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "halls":
		return a.halls(ctx, args)
	case "watch":
		return a.watch(ctx, args)
	case "menu":
		return a.menu(ctx, args)
	case "chart":
		return a.chart(args)
	case "prefs":
		return a.prefs(ctx, args)
	case "chat":
		return a.chat(ctx, args)
	case "wrapped":
		return a.wrapped(args)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

func (a *app) newBoard() *waittime.Board {
	return waittime.NewBoard(waittime.NewAggregator(a.client), models.HallNames(models.DiningHalls), a.log)
}

func (a *app) halls(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("halls", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	board := a.newBoard()
	if err := board.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh wait times: %w", err)
	}
	return a.printBoard(board)
}

func (a *app) printBoard(board *waittime.Board) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HALL\tHOURS\tWAIT")
	for _, loc := range models.DiningHalls {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", loc.Name, loc.Hours, board.Label(loc.Name))
	}
	return tw.Flush()
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(a.out)
	interval := fs.Duration("interval", a.cfg.RefreshInterval, "refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	board := a.newBoard()
	refresher := waittime.NewRefresher(board, *interval, waittime.WithOnRefresh(func(_ map[string]float64, err error) {
		if err != nil {
			fmt.Fprintf(a.out, "%s refresh failed, showing previous values\n", time.Now().Format(time.Kitchen))
		} else {
			fmt.Fprintf(a.out, "%s\n", board.UpdatedAt().Format(time.Kitchen))
		}
		if err := a.printBoard(board); err != nil {
			a.log.Error("failed to print wait times", "error", err)
		}
	}))

	refresher.Start(ctx)
	<-ctx.Done()
	refresher.Stop()
	return nil
}

func (a *app) menu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	fs.SetOutput(a.out)
	hall := fs.String("hall", "", "dining hall name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hall == "" {
		return errors.New("-hall is required")
	}

	board := a.newBoard()
	if err := board.Refresh(ctx); err != nil {
		a.log.Warn("wait time unavailable", "hall", *hall, "error", err)
	}

	detail := menu.NewDetail(a.client, board, a.cfg.UserID, a.log, menu.WithCacheTTL(a.cfg.MenuCacheTTL))
	view := detail.Open(ctx, *hall)
	defer detail.Close()

	if view.WaitKnown {
		fmt.Fprintf(a.out, "%s\nWait: %s (%s)\n\n", view.Hall, view.WaitLabel(), view.Severity)
	} else {
		fmt.Fprintf(a.out, "%s\nWait: %s\n\n", view.Hall, view.WaitLabel())
	}
	if view.NoData {
		fmt.Fprintln(a.out, menu.NoDataText)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATION\tITEM\tMEAL")
	for _, item := range view.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.FoodStation, item.Name, item.MealTime)
	}
	return tw.Flush()
}

func (a *app) chart(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(a.out)
	hall := fs.String("hall", "", "dining hall name")
	dayName := fs.String("day", history.DefaultDay.String(), "weekday, Monday to Friday")
	out := fs.String("out", "", "output file, .png or .svg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hall == "" {
		return errors.New("-hall is required")
	}

	day, err := history.ParseDay(*dayName)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = strings.ToLower(strings.ReplaceAll(*hall, " ", "_")) + "_" + strings.ToLower(day.String()) + ".png"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := history.RenderChart(f, *hall, day, history.FormatFromPath(path)); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

func (a *app) prefs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ContinueOnError)
	fs.SetOutput(a.out)
	toggle := fs.String("toggle", "", "comma-separated flags to flip: wants_v, wants_vgn, wants_w_nuts")
	submit := fs.Bool("submit", false, "save the preferences")
	if err := fs.Parse(args); err != nil {
		return err
	}

	editor := preferences.NewEditor(a.client, a.cfg.UserID, a.log)
	if err := editor.Load(ctx); err != nil {
		return err
	}

	if *toggle != "" {
		for _, flagName := range strings.Split(*toggle, ",") {
			if err := editor.Toggle(strings.TrimSpace(flagName)); err != nil {
				return err
			}
		}
	}

	if *submit {
		if _, err := editor.Submit(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Preferences updated.")
	} else if editor.Dirty() {
		fmt.Fprintln(a.out, "Not saved, rerun with -submit.")
	}

	user := editor.User()
	if user.Name != "" {
		fmt.Fprintf(a.out, "%s\n", user.Name)
	}
	p := editor.Preferences()
	fmt.Fprintf(a.out, "Vegetarian:   %s\n", yesNo(p.WantsV))
	fmt.Fprintf(a.out, "Vegan:        %s\n", yesNo(p.WantsVgn))
	fmt.Fprintf(a.out, "Nuts allowed: %s\n", yesNo(p.WantsWNuts))
	return nil
}

func yesNo(v int) string {
	if v == 1 {
		return "yes"
	}
	return "no"
}

func (a *app) chat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "ask a single question and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session := chat.NewSession(a.client, a.cfg.UserID, a.log)

	if *query != "" {
		if reply, ok := session.Send(ctx, *query); ok {
			fmt.Fprintln(a.out, reply.Text)
		}
		return nil
	}

	fmt.Fprintln(a.out, "Ask what to eat. Empty line or Ctrl-D to quit.")
	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		reply, _ := session.Send(ctx, line)
		fmt.Fprintln(a.out, reply.Text)
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Fprintln(a.out)
	return scanner.Err()
}

func (a *app) wrapped(args []string) error {
	fs := flag.NewFlagSet("wrapped", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return wrapped.Render(a.out, wrapped.Ranked(wrapped.Generate()))
}
