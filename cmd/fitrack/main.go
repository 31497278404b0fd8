package main

//// Small CLI client for the fitrack backend: login, check the
//// dashboard, start/complete workout sessions and watch a running
//// session live from the terminal.

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/2beens/fitrack/internal/client"
	"github.com/2beens/fitrack/internal/users"
	"github.com/2beens/fitrack/internal/workouts/plans"
	"github.com/2beens/fitrack/internal/workouts/sessions"
	"github.com/2beens/fitrack/internal/workouts/timer"
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
}

func main() {
	serverURL := flag.String("server", "http://localhost:4000", "fitrack backend base URL")
	tokenPath := flag.String(
		"token-file",
		defaultTokenPath(),
		"path of the file holding the auth token",
	)
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	c := client.NewClient(*serverURL, client.NewFileTokenStore(*tokenPath),
		client.WithOnUnauthorized(func() {
			log.Println("session expired, please login again")
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "register":
		err = register(ctx, c, flag.Args()[1:])
	case "login":
		err = login(ctx, c, flag.Args()[1:])
	case "logout":
		err = c.Logout(ctx)
		if err == nil {
			log.Println("logged out")
		}
	case "me":
		err = me(ctx, c)
	case "dashboard":
		err = dashboard(ctx, c)
	case "sessions":
		err = listSessions(ctx, c)
	case "start":
		err = start(ctx, c, flag.Args()[1:])
	case "complete":
		err = complete(ctx, c)
	case "watch":
		err = watch(ctx, c)
	case "plan":
		err = plan(ctx, c, flag.Args()[1:])
	case "unplan":
		err = unplan(ctx, c, flag.Args()[1:])
	default:
		log.Printf("unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if client.IsUnauthorized(err) {
			log.Fatalln("not logged in - run: fitrack login <username>")
		}
		log.Fatalf("error: %s", err)
	}
}

func printUsage() {
	log.Println(`usage: fitrack [flags] <command>

commands:
  register <email> [username]   create an account (prompts for password)
  login <email>                 login (prompts for password)
  logout                        logout and drop the stored token
  me                            show the logged-in user
  dashboard                     streak, weekly totals, active session
  sessions                      list workout sessions
  start [activity]              start a workout session
  complete                      complete the active session
  watch                         live elapsed time of the active session
  plan <date> [title]           show or set the plan for a day (YYYY-MM-DD)
  unplan <date>                 drop the plan for a day`)
	flag.PrintDefaults()
}

func defaultTokenPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fitrack-token"
	}
	return filepath.Join(homeDir, ".fitrack-token")
}

func promptPassword() (string, error) {
	fmt.Print("password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(password), nil
}

func register(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fitrack register <email> [username]")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	registerReq := users.RegisterRequest{
		Email:    args[0],
		Password: password,
	}
	if len(args) > 1 {
		registerReq.Username = args[1]
	}

	user, err := c.Register(ctx, registerReq)
	if err != nil {
		return err
	}

	log.Printf("welcome, %s - you are now logged in\n", user.Email)
	return nil
}

func login(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fitrack login <email>")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	user, err := c.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	log.Printf("logged in as %s\n", user.Email)
	return nil
}

func me(ctx context.Context, c *client.Client) error {
	user, err := c.Me(ctx)
	if err != nil {
		return err
	}

	log.Printf("email:      %s", user.Email)
	if user.Username != "" {
		log.Printf("username:   %s", user.Username)
	}
	if user.FirstName != "" || user.LastName != "" {
		log.Printf("name:       %s %s", user.FirstName, user.LastName)
	}
	if user.Goal != "" {
		log.Printf("goal:       %s", user.Goal)
	}
	if user.ExperienceLevel != "" {
		log.Printf("experience: %s", user.ExperienceLevel)
	}
	if !user.Onboarded() {
		log.Println("onboarding not completed yet")
	}
	return nil
}

func dashboard(ctx context.Context, c *client.Client) error {
	d, err := c.Dashboard(ctx)
	if err != nil {
		return err
	}

	log.Printf("streak:      %d day(s)", d.StreakDays)
	log.Printf("this week:   %d workout(s), %d min", d.WeeklyWorkoutCount, d.WeeklyMinutes)
	if d.StreakAtRisk {
		log.Println("⚠ streak at risk - no workout completed today yet")
	}
	if d.ActiveSession != nil {
		log.Printf(
			"in progress: %s (started %s)",
			d.ActiveSession.Title,
			d.ActiveSession.StartedAt.Format(time.Kitchen),
		)
	}
	return nil
}

func listSessions(ctx context.Context, c *client.Client) error {
	list, err := c.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		log.Println("no sessions yet")
		return nil
	}

	for _, session := range list {
		log.Println(formatSession(session))
	}
	return nil
}

func start(ctx context.Context, c *client.Client, args []string) error {
	// advisory check only, another device can still slip a session in
	// between the check and the start
	if active, err := c.GetActiveSession(ctx); err != nil {
		return err
	} else if active != nil {
		return fmt.Errorf("session [%s] already in progress, complete it first", active.Title)
	}

	activityType := ""
	if len(args) > 0 {
		activityType = args[0]
	}

	session, err := c.StartSession(ctx, "", activityType)
	if err != nil {
		return err
	}

	log.Printf("started: %s [%s]\n", session.Title, session.ID)
	return nil
}

func complete(ctx context.Context, c *client.Client) error {
	active, err := c.GetActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no active session")
	}

	completed, err := c.CompleteSession(ctx, active.ID, time.Time{})
	if err != nil {
		return err
	}

	durationMin := 0
	if completed.DurationMin != nil {
		durationMin = *completed.DurationMin
	}
	log.Printf("completed: %s, %d min 💪\n", completed.Title, durationMin)
	return nil
}

func watch(ctx context.Context, c *client.Client) error {
	active, err := c.GetActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no active session")
	}

	log.Printf("watching: %s (ctrl+c to stop)\n", active.Title)

	t := timer.New(active, nil)
	err = t.Run(ctx, time.Second, func(elapsedSeconds int) {
		fmt.Printf("\r%s ", formatElapsed(elapsedSeconds))
	})
	fmt.Println()

	if err == context.Canceled {
		return nil
	}
	return err
}

func plan(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fitrack plan <date> [title]")
	}
	planDate := args[0]

	if len(args) == 1 {
		p, err := c.GetPlan(ctx, planDate)
		if err != nil {
			return err
		}
		if p == nil {
			log.Printf("nothing planned for %s\n", planDate)
			return nil
		}
		log.Println(formatPlan(p))
		return nil
	}

	p, err := c.UpsertPlan(ctx, planDate, plans.UpsertRequest{
		Title: strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}

	log.Printf("planned: %s\n", formatPlan(p))
	return nil
}

func unplan(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fitrack unplan <date>")
	}
	if err := c.DeletePlan(ctx, args[0]); err != nil {
		return err
	}
	log.Printf("plan for %s dropped\n", args[0])
	return nil
}

func formatPlan(p *plans.PlannedWorkout) string {
	out := "[" + p.PlanDate + "] " + p.Title
	if p.ScheduledTime != "" {
		out += " at " + p.ScheduledTime
	}
	if p.Notes != "" {
		out += " - " + p.Notes
	}
	return out
}

func formatElapsed(elapsedSeconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d",
		elapsedSeconds/3600,
		(elapsedSeconds%3600)/60,
		elapsedSeconds%60,
	)
}

func formatSession(session sessions.WorkoutSession) string {
	if session.IsActive() {
		return fmt.Sprintf(
			"[%s] %s - in progress since %s",
			session.StartedAt.Format("2006-01-02"),
			session.Title,
			session.StartedAt.Format(time.Kitchen),
		)
	}

	durationMin := 0
	if session.DurationMin != nil {
		durationMin = *session.DurationMin
	}
	return fmt.Sprintf(
		"[%s] %s - %d min",
		session.StartedAt.Format("2006-01-02"),
		session.Title,
		durationMin,
	)
}
