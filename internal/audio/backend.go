package audio

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

var (
	ErrNoBackend   = errors.New("no audio backend found")
	ErrUnknownKind = errors.New("unknown sound kind")
)

// Backend is an external player fed raw PCM on stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// LookPath resolves an executable name, as exec.LookPath does.
type LookPath func(file string) (string, error)

// DetectBackend returns the first available player.
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay.
func DetectBackend(lookPath LookPath) (*Backend, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	rate := strconv.Itoa(int(SampleRate))
	candidates := []Backend{
		{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=2", "--latency-msec=50", "--playback"}},
		{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=2", "--latency=50ms", "-"}},
		{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", "2", "-q"}},
		{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", rate, "-", "-d", "-q"}},
		{Name: "ffplay", Args: []string{
			"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", rate,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
		}},
	}
	for _, c := range candidates {
		if path, err := lookPath(c.Name); err == nil {
			c.Path = path
			return &c, nil
		}
	}
	return nil, ErrNoBackend
}

// Sink opens the stream PCM frames are written to.
type Sink func() (io.WriteCloser, error)

// ExecSink detects a backend and pipes into its stdin.
func ExecSink() Sink {
	return func() (io.WriteCloser, error) {
		b, err := DetectBackend(nil)
		if err != nil {
			return nil, err
		}
		cmd := exec.Command(b.Path, b.Args...) //nolint:gosec // fixed argument list
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name, err)
		}
		if err := cmd.Start(); err != nil {
			_ = stdin.Close()
			return nil, fmt.Errorf("%s: %w", b.Name, err)
		}
		return &procWriter{WriteCloser: stdin, cmd: cmd}, nil
	}
}

type procWriter struct {
	io.WriteCloser
	cmd *exec.Cmd
}

func (p *procWriter) Close() error {
	err := p.WriteCloser.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	return err
}
