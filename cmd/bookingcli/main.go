package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"doctor-booking-client/internal/api"
	"doctor-booking-client/internal/cache"
	"doctor-booking-client/internal/config"
	"doctor-booking-client/internal/guard"
	"doctor-booking-client/internal/query"
	"doctor-booking-client/internal/session"
)

var errQuit = fmt.Errorf("quit")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Verbose)
	defer logger.Sync()

	sess := session.NewStore(cfg.StateDir, logger)
	apiClient := api.New(cfg, sess, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		sess:    sess,
		api:     apiClient,
		queries: query.New(apiClient, cache.New(logger)),
		in:      bufio.NewScanner(os.Stdin),
	}
	if err := a.run(ctx); err != nil && err != errQuit && ctx.Err() == nil {
		log.Fatalf("bookingcli: %v", err)
	}
	fmt.Println("bye")
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		return l
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return l
}

type app struct {
	sess    *session.Store
	api     *api.Client
	queries *query.Client
	in      *bufio.Scanner
}

func (a *app) run(ctx context.Context) error {
	a.sess.Initialize()

	for ctx.Err() == nil {
		d := guard.Evaluate(a.sess.Snapshot())
		switch d.State {
		case guard.Unknown:
			// rehydration pending: neutral loading state, no redirect
			fmt.Println("loading…")
			continue
		case guard.Denied:
			if err := a.authScreen(ctx); err != nil {
				return err
			}
		case guard.Granted:
			snap := a.sess.Snapshot()
			var err error
			switch guard.Landing(snap.User) {
			case guard.PatientDashboardPath:
				err = a.patientScreen(ctx)
			case guard.DoctorDashboardPath:
				err = a.doctorScreen(ctx)
			default:
				a.sess.Logout()
			}
			if err != nil {
				return err
			}
		}
	}
	return ctx.Err()
}

// notify renders a backend or validation failure as a one-line notice; no
// error coming off a screen action is fatal.
func notify(err error) {
	color.New(color.FgRed).Fprintf(os.Stdout, "✗ %v\n", err)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return "", errQuit
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *app) choose(title string, options ...string) (int, error) {
	color.New(color.FgCyan, color.Bold).Println(title)
	for i, o := range options {
		fmt.Printf("  %d) %s\n", i+1, o)
	}
	for {
		raw, err := a.prompt("choice")
		if err != nil {
			return 0, err
		}
		for i := range options {
			if raw == fmt.Sprintf("%d", i+1) {
				return i + 1, nil
			}
		}
		fmt.Println("invalid choice")
	}
}
