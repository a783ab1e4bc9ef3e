// Package panel is the terminal control panel: it supervises the web
// adapter process and drives the two-step login cycle. No business
// logic lives here.
package panel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/session"
	"github.com/pkg/browser"
)

type Panel struct {
	sess  *session.Manager
	super *Supervisor

	in  io.Reader
	out io.Writer

	openURL func(string) error

	logger logger.Logger
}

func New(sess *session.Manager, super *Supervisor, in io.Reader, out io.Writer, logger logger.Logger) *Panel {
	return &Panel{
		sess:    sess,
		super:   super,
		in:      in,
		out:     out,
		openURL: browser.OpenURL,
		logger:  logger,
	}
}

// Run reads commands line by line until EOF, quit or context end.
func (p *Panel) Run(ctx context.Context) error {
	p.printf("kite-bridge control panel. Type 'help' for commands.")
	p.prompt()

	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !p.dispatch(ctx, strings.Fields(scanner.Text())) {
			break
		}
		p.prompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: can't read panel input", err)
	}

	if p.super.Running() {
		return p.super.Stop()
	}
	return nil
}

// dispatch handles one command line; false means quit.
func (p *Panel) dispatch(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "help":
		p.printf("commands: start [port] | stop | status | login | token <request_token> | quit")
	case "start":
		if len(args) > 1 {
			if _, err := strconv.Atoi(args[1]); err != nil {
				p.printf("invalid port number: %s", args[1])
				return true
			}
		}
		if err := p.super.Start(args[1:]...); err != nil {
			p.printf("start failed: %s", err)
		}
	case "stop":
		if err := p.super.Stop(); err != nil {
			p.printf("stop failed: %s", err)
		}
	case "status":
		if p.super.Running() {
			p.printf("server: running, pid %d", p.super.Pid())
		} else {
			p.printf("server: stopped")
		}
		if p.sess.Authenticated() {
			p.printf("session: access token bound")
		} else {
			p.printf("session: no access token, run 'login'")
		}
	case "login":
		url := p.sess.LoginURL()
		p.printf("opening %s", url)
		p.printf("after logging in, copy the request_token from the redirect URL and run: token <request_token>")
		if err := p.openURL(url); err != nil {
			p.printf("can't open browser, visit the URL manually: %s", err)
		}
	case "token":
		if len(args) < 2 {
			p.printf("usage: token <request_token>")
			return true
		}
		if _, err := p.sess.ExchangeToken(ctx, args[1]); err != nil {
			p.printf("token exchange failed: %s", err)
			return true
		}
		p.printf("access token saved. Restart the server to pick it up if it was already running.")
	case "quit", "exit":
		return false
	default:
		p.printf("unknown command %q, type 'help'", args[0])
	}

	return true
}

func (p *Panel) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Panel) prompt() {
	fmt.Fprint(p.out, "> ")
}
