package panel

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/NiftyLabs/kite-bridge/internal/logger"
)

const _stopGrace = 5 * time.Second

// Supervisor runs the web adapter as a child process so a wedged or
// crashed server never takes the panel down with it.
type Supervisor struct {
	command string
	logger  logger.Logger

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

func NewSupervisor(command string, logger logger.Logger) *Supervisor {
	return &Supervisor{
		command: command,
		logger:  logger,
	}
}

// Start launches the child and relays its output line by line.
func (s *Supervisor) Start(args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return fmt.Errorf("server already running (pid %d)", s.cmd.Process.Pid)
	}

	cmd := exec.Command(s.command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: can't pipe stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%w: can't pipe stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: can't start %s", err, s.command)
	}

	go s.relay(stdout)
	go s.relay(stderr)

	done := make(chan struct{})
	s.cmd = cmd
	s.done = done
	s.logger.Infof("server started, pid %d", cmd.Process.Pid)

	go s.reap(cmd, done)

	return nil
}

// Stop sends SIGTERM and escalates to SIGKILL after the grace period.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.mu.Unlock()

	if cmd == nil {
		return fmt.Errorf("server is not running")
	}

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("%w: can't signal server", err)
	}

	select {
	case <-done:
	case <-time.After(_stopGrace):
		s.logger.Warnf("server did not exit within %s, killing", _stopGrace)
		_ = cmd.Process.Kill()
		<-done
	}

	return nil
}

func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

func (s *Supervisor) relay(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.logger.Infof("[server] %s", scanner.Text())
	}
}

// reap clears the handle once the child exits, however it exited.
func (s *Supervisor) reap(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	s.mu.Lock()
	if s.cmd == cmd {
		s.cmd = nil
		s.done = nil
	}
	s.mu.Unlock()
	close(done)

	if err != nil {
		s.logger.Warnf("server exited: %s", err)
		return
	}
	s.logger.Infof("server exited cleanly")
}
