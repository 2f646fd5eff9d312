package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"nundu/internal/api"
	"nundu/internal/config"
	"nundu/internal/server"
)

const (
	pingTimeout        = 500 * time.Millisecond
	serverStartTimeout = 3 * time.Second
	serverStopTimeout  = 2 * time.Second
	serverPollInterval = 100 * time.Millisecond
)

// withClient runs fn against the configured API, starting a local server for
// the duration of the call when nothing answers.
func withClient(ctx context.Context, cfg *config.Config, fn func(*api.Client) error) error {
	local, err := ensureServer(ctx, cfg)
	if err != nil {
		return err
	}
	if local != nil {
		defer local.stop()
	}
	return fn(api.NewClient(cfg.APIURL))
}

// localServer is a background `nundu srv` process owned by one command.
type localServer struct {
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	logger *slog.Logger
}

// stop interrupts the server and kills it if it does not exit in time.
func (s *localServer) stop() {
	s.logger.Debug("stopping local server", "pid", s.cmd.Process.Pid)
	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = s.cmd.Process.Kill()
	}

	done := make(chan struct{})
	go func() {
		_ = s.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(serverStopTimeout):
		_ = s.cmd.Process.Kill()
		<-done
	}
}

// output returns what the server wrote to stderr. Only valid after stop.
func (s *localServer) output() string {
	return strings.TrimSpace(s.stderr.String())
}

func ensureServer(ctx context.Context, cfg *config.Config) (*localServer, error) {
	client := api.NewClient(cfg.APIURL)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	pingErr := client.Ping(pingCtx)
	cancel()
	if pingErr == nil {
		return nil, nil
	}

	// Only loopback addresses can be served by a process we start here.
	if _, err := server.ListenAddr(cfg.APIURL); err != nil {
		return nil, pingErr
	}

	logger := slog.Default().With("component", "client")
	logger.Debug("starting local server", "api_url", cfg.APIURL, "data_dir", cfg.DataDir, "storage", cfg.Storage)

	local, err := startServerProcess(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := waitForServer(ctx, client, serverStartTimeout); err != nil {
		local.stop()
		if out := local.output(); out != "" {
			return nil, fmt.Errorf("local server did not start: %w: %s", err, lastLine(out))
		}
		return nil, fmt.Errorf("local server did not start: %w", err)
	}
	return local, nil
}

func startServerProcess(cfg *config.Config, logger *slog.Logger) (*localServer, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	stderr := &bytes.Buffer{}
	cmd := exec.Command(exe, "srv")
	cmd.Env = append(os.Environ(),
		"NUNDU_DATA_DIR="+cfg.DataDir,
		"NUNDU_STORAGE="+cfg.Storage,
		"NUNDU_API_URL="+cfg.APIURL,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &localServer{cmd: cmd, stderr: stderr, logger: logger}, nil
}

// waitForServer polls until the API answers. Anything other than a refused
// connection means the port belongs to someone else and fails fast.
func waitForServer(ctx context.Context, client *api.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(serverPollInterval)
	defer ticker.Stop()

	for {
		pingCtx, pingCancel := context.WithTimeout(ctx, 4*serverPollInterval)
		err := client.Ping(pingCtx)
		pingCancel()
		if err == nil {
			return nil
		}
		if !isConnRefused(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.New("timed out waiting for server")
		case <-ticker.C:
		}
	}
}

func isConnRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
