package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pelada-manager/internal/config"
	"pelada-manager/internal/container"
	"pelada-manager/internal/matches"
	"pelada-manager/internal/summary"
	"pelada-manager/pkg/logger"
)

const usage = `Usage: pelada-manager <command> [args]

Commands:
  login <email> <password>   sign in and persist the session
  logout                     sign out and clear the session
  orgs                       list organizations
  pelada <id>                show a pelada's dashboard (standings, player stats)
  roster <id>                show team rosters, averages and balance
  summary <id>               print the shareable session digest
  attendance <id>            show attendance counts
  close <id>                 close a pelada (asks for confirmation)
  status                     show session and connection status
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, c, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *container.Container, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	// Every command except login works against the restored session
	if args[0] != "login" && args[0] != "status" {
		if _, err := c.Session.Restore(ctx); err != nil {
			return err
		}
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		user, err := c.Session.SignIn(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
		return nil

	case "logout":
		c.Session.SignOut(ctx)
		fmt.Println("Signed out")
		return nil

	case "orgs":
		orgs, err := c.API.ListOrganizations(ctx)
		if err != nil {
			return err
		}
		for _, org := range orgs {
			fmt.Printf("%d\t%s\n", org.ID, org.Name)
		}
		return nil

	case "pelada":
		return showDashboard(ctx, c, args[1:])

	case "roster":
		return showRoster(ctx, c, args[1:])

	case "summary":
		return showSummary(ctx, c, args[1:])

	case "attendance":
		return showAttendance(ctx, c, args[1:])

	case "close":
		return closePelada(ctx, c, args[1:])

	case "status":
		return showStatus(ctx, c)

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func peladaID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a pelada id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pelada id %q", args[0])
	}
	return id, nil
}

func showDashboard(ctx context.Context, c *container.Container, args []string) error {
	id, err := peladaID(args)
	if err != nil {
		return err
	}

	engine := c.MatchEngine(id, confirmOnStdin)
	if err := engine.Refresh(ctx); err != nil {
		return err
	}

	data := engine.Data()
	fmt.Printf("Pelada %d (%s)\n\n", data.Pelada.ID, data.Pelada.Status)

	fmt.Println("Standings:")
	for i, s := range engine.Standings() {
		fmt.Printf("  %d. %-20s %dW %dD %dL  %d goals\n", i+1, s.TeamName, s.Wins, s.Draws, s.Losses, s.GoalsFor)
	}

	fmt.Println("\nPlayer stats:")
	for _, s := range engine.PlayerStats(matches.SortState{}) {
		fmt.Printf("  %-20s %dG %dA %dOG (%d matches)\n", s.Name, s.Goals, s.Assists, s.OwnGoals, s.MatchesPlayed)
	}
	return nil
}

func showRoster(ctx context.Context, c *container.Container, args []string) error {
	id, err := peladaID(args)
	if err != nil {
		return err
	}

	engine := c.RosterEngine(id)
	if err := engine.Refresh(ctx); err != nil {
		return err
	}

	for _, team := range engine.Teams() {
		fmt.Printf("%s (avg %.1f):\n", team.Name, engine.TeamAverage(team.ID))
		for _, p := range team.Players {
			fmt.Printf("  %s\n", p.Name)
		}
	}

	bench := engine.Bench()
	if len(bench) > 0 {
		fmt.Println("Bench:")
		for _, p := range bench {
			fmt.Printf("  %s\n", p.Name)
		}
	}

	fmt.Printf("\nBalance: %d%%\n", engine.BalancePercent())
	return nil
}

func showSummary(ctx context.Context, c *container.Container, args []string) error {
	id, err := peladaID(args)
	if err != nil {
		return err
	}

	engine := c.MatchEngine(id, confirmOnStdin)
	if err := engine.Refresh(ctx); err != nil {
		return err
	}

	data := engine.Data()
	date := time.Now()
	if data.Pelada.ScheduledAt != nil {
		date = *data.Pelada.ScheduledAt
	}

	fmt.Print(summary.FormatPeladaSummary(date, engine.Standings(), engine.PlayerStats(matches.SortState{})))
	return nil
}

func showAttendance(ctx context.Context, c *container.Container, args []string) error {
	id, err := peladaID(args)
	if err != nil {
		return err
	}

	tracker := c.AttendanceTracker(id)
	if err := tracker.Refresh(ctx); err != nil {
		return err
	}

	counts := tracker.Counts()
	fmt.Printf("Confirmed: %d  Declined: %d  Pending: %d  (total %d)\n",
		counts.Confirmed, counts.Declined, counts.Pending, counts.Total())

	if tracker.LeftAttendancePhase() {
		fmt.Println("Attendance phase is over for this pelada.")
	}
	return nil
}

func showStatus(ctx context.Context, c *container.Container) error {
	if err := c.Health(ctx); err != nil {
		fmt.Printf("Connections: unhealthy (%v)\n", err)
	} else {
		fmt.Println("Connections: ok")
	}

	user, err := c.Session.Restore(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Session: not signed in")
		return nil
	}
	fmt.Printf("Session: signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func closePelada(ctx context.Context, c *container.Container, args []string) error {
	id, err := peladaID(args)
	if err != nil {
		return err
	}

	engine := c.MatchEngine(id, confirmOnStdin)
	if err := engine.ClosePelada(ctx); err != nil {
		if err == matches.ErrDeclined {
			fmt.Println("Aborted")
			return nil
		}
		return err
	}
	fmt.Printf("Pelada %d closed\n", id)
	return nil
}

// confirmOnStdin blocks on an explicit yes/no answer before irreversible
// transitions
func confirmOnStdin(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
