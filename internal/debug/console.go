package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Versifine/hearth/internal/logger"
	"github.com/Versifine/hearth/internal/status"
)

type PlayerLister interface {
	Online() int32
	Sample(limit int) []status.Sample
}

type StatusProvider interface {
	Status() (string, error)
}

type ConnCounter interface {
	Connections() int32
}

// Console is a line-based operator console.
type Console struct {
	players PlayerLister
	status  StatusProvider
	conns   ConnCounter
	stop    func()

	in  io.Reader
	out io.Writer
}

func NewConsole(players PlayerLister, status StatusProvider, conns ConnCounter, stop func()) *Console {
	return &Console{
		players: players,
		status:  status,
		conns:   conns,
		stop:    stop,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Interactive 判断标准输入是否为终端，只有终端下才启动控制台
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Start reads commands until ctx is done or input ends.
func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.players == nil || c.status == nil || c.conns == nil {
		return fmt.Errorf("console dependencies are nil")
	}

	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	c.printf("console started, type help for commands")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("read console input: %w", err)
			}
			return nil
		case line := <-lines:
			c.executeCommand(strings.TrimSpace(line))
		}
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "list":
		sample := c.players.Sample(int(c.players.Online()))
		c.printf("%d player(s) online", len(sample))
		for _, p := range sample {
			c.printf("  %s (%s)", p.Name, p.ID)
		}
	case "conns":
		c.printf("%d open connection(s)", c.conns.Connections())
	case "status":
		doc, err := c.status.Status()
		if err != nil {
			c.printf("status failed: %v", err)
			return
		}
		c.printf("%s", doc)
	case "level":
		if len(parts) != 2 {
			c.printf("usage: level <debug|info|warn|error>")
			return
		}
		if err := logger.SetLevel(parts[1]); err != nil {
			c.printf("%v", err)
			return
		}
		c.printf("log level set to %s", parts[1])
	case "stop":
		c.printf("stopping server")
		if c.stop != nil {
			c.stop()
		}
	default:
		c.printf("unknown command: %s", parts[0])
	}
}

func (c *Console) printHelp() {
	c.printf("commands:")
	c.printf("  list              online players")
	c.printf("  conns             open connections")
	c.printf("  status            current status document")
	c.printf("  level <level>     change log level")
	c.printf("  stop              shut the server down")
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, "[console] "+format+"\n", args...)
}
