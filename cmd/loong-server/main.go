package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/loong/internal/cli"
	"github.com/Mshel/loong/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost string = "0.0.0.0"
	defaultPort string = "6996"

	maxConnectionsPerIP = 2
)

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquireIP counts a connection from ip unless the limit is reached. It
// returns the count before the attempt.
func acquireIP(ip string) (int, bool) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	count := ipCounter[ip]
	if count >= maxConnectionsPerIP {
		return count, false
	}
	ipCounter[ip]++
	return count, true
}

func releaseIP(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount, ok := acquireIP(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", currentCount+1, "limit", maxConnectionsPerIP)
		next(s)
		log.Info("Connection closed", "ip", ip, "count_after", releaseIP(ip))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	settings := cli.Register(flag.CommandLine)
	flag.Parse()

	level, err := settings.Level()
	if err != nil {
		log.Fatal("Invalid flags", "error", err)
	}
	log.SetLevel(level)

	options, err := settings.Options(log.Default())
	if err != nil {
		log.Fatal("Invalid flags", "error", err)
	}

	host := envOr("LOONG_HOST", defaultHost)
	port := envOr("LOONG_PORT", defaultPort)
	sshPKeyPath := envOr("LOONG_PRIVATE_KEY_PATH", ".ssh/id_ed25519")

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(sshPKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(options)),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

// viewHandler gives every SSH session its own board and tick loop.
func viewHandler(options ui.Options) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()

		sessionOptions := options
		sessionOptions.Logger = log.Default().With("user", sshSession.User(), "ip", getIP(sshSession))

		controllerModel := ui.NewControllerModel(sessionOptions, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
