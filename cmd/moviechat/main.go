// moviechat is a terminal front end for the movie booking assistant.  It
// drives a chat session against a running API server: free text goes to
// the assistant, slash commands pick movies, showtimes, tickets and
// seats, and /book places the booking.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/iliyamo/movie-chat-booking/internal/client"
	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		server   string
		delay    time.Duration
		username string
		password string
		register bool
	)
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	flagSet := pflag.NewFlagSet("moviechat", pflag.ContinueOnError)
	flagSet.StringVarP(&server, "server", "s", cfg.Server, "API server base URL")
	flagSet.DurationVar(&delay, "delay", cfg.ChatDelay, "simulated typing delay before each reply (CHAT_DELAY)")
	flagSet.StringVarP(&username, "user", "u", "", "sign in as this user so bookings are saved to the account")
	flagSet.StringVarP(&password, "password", "p", cfg.Password, "password for --user")
	flagSet.BoolVar(&register, "register", false, "create the --user account first")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(server)
	sess := session.New(api, delay)
	if username != "" {
		auth := api.Login
		if register {
			auth = api.Register
		}
		res, err := auth(ctx, username, password)
		if err != nil {
			return fmt.Errorf("sign in as %s: %w", username, err)
		}
		sess.SetUserID(res.User.ID)
	}

	return newREPL(sess, api, os.Stdin, os.Stdout).Run(ctx)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: moviechat [flags]\n\nChat with the movie booking assistant.\n\nFlags:\n")
	flagSet.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nType /help inside the chat for commands.\n")
}
