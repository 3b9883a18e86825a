package lcu

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// ErrClientNotRunning means the game client process was not found, or its
// command line did not carry usable credentials. This is the expected steady
// state while the client is closed, not a hard failure.
var ErrClientNotRunning = errors.New("game client is not running")

var (
	portPattern  = regexp.MustCompile(`--app-port=(\d+)`)
	tokenPattern = regexp.MustCompile(`--remoting-auth-token=([\w-]+)`)
)

// Credentials holds the connection details extracted from the client's
// command line. Valid only while that process instance is alive.
type Credentials struct {
	Port  int
	Token string
}

// Discover probes the OS process table for the client UX process and
// extracts its API port and auth token. Both must be present.
func Discover(executable string) (Credentials, error) {
	cmdline, err := processCommandLine(executable)
	if err != nil {
		return Credentials{}, err
	}
	return parseCommandLine(cmdline)
}

// parseCommandLine extracts credentials from a raw process command line
func parseCommandLine(cmdline string) (Credentials, error) {
	portMatch := portPattern.FindStringSubmatch(cmdline)
	tokenMatch := tokenPattern.FindStringSubmatch(cmdline)
	if portMatch == nil || tokenMatch == nil {
		return Credentials{}, ErrClientNotRunning
	}

	port, err := strconv.Atoi(portMatch[1])
	if err != nil || port <= 0 {
		return Credentials{}, ErrClientNotRunning
	}

	return Credentials{Port: port, Token: tokenMatch[1]}, nil
}

// processCommandLine returns the full command line of the named process.
// Uses wmic on Windows and ps elsewhere.
func processCommandLine(executable string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		filter := fmt.Sprintf("name='%s.exe'", executable)
		cmd = exec.Command("wmic", "PROCESS", "WHERE", filter, "GET", "commandline")
	} else {
		cmd = exec.Command("ps", "-A", "-o", "args=")
	}

	output, err := cmd.Output()
	if err != nil {
		return "", ErrClientNotRunning
	}

	for _, line := range strings.Split(string(output), "\n") {
		if strings.Contains(line, executable) && strings.Contains(line, "--app-port=") {
			return line, nil
		}
	}
	return "", ErrClientNotRunning
}
