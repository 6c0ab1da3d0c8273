// Package ringtone plays the alarm sound by running an external command.
package ringtone

import (
	"alarmclock/internal/application/service"
	"alarmclock/internal/pkg/logger"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Player starts one process per Play. With no command configured it only logs.
type Player struct {
	argv []string
	log  logger.Logger
}

var _ service.RingtonePlayer = (*Player)(nil)

func NewPlayer(argv []string, log logger.Logger) *Player {
	return &Player{argv: argv, log: log.With("ringtone")}
}

func (p *Player) Play() (service.Ringtone, error) {
	if len(p.argv) == 0 {
		p.log.Info("🎵 Ringtone playing (no RINGTONE_COMMAND configured)")
		return &silentRingtone{log: p.log}, nil
	}

	cmd := exec.Command(p.argv[0], p.argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", strings.Join(p.argv, " "), err)
	}
	p.log.Info(fmt.Sprintf("🎵 Ringtone playing (pid %d)", cmd.Process.Pid))

	r := &processRingtone{cmd: cmd, done: make(chan struct{})}
	go func() {
		r.waitErr = cmd.Wait()
		close(r.done)
	}()
	return r, nil
}

type processRingtone struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
	once    sync.Once
}

// Stop kills the process if it is still running. Calling it again is a no-op.
func (r *processRingtone) Stop() error {
	var err error
	r.once.Do(func() {
		select {
		case <-r.done:
			return
		default:
		}
		if kerr := r.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			err = kerr
			return
		}
		<-r.done
	})
	return err
}

type silentRingtone struct {
	log logger.Logger
}

func (r *silentRingtone) Stop() error {
	r.log.Info("Ringtone stopped")
	return nil
}
