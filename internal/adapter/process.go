package adapter

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// signalByName sends sig to every process whose comm matches name.
// Returns the number of processes signaled.
func signalByName(name string, sig unix.Signal) int {
	pids, err := pidsByComm(name)
	if err != nil {
		return 0
	}

	signaled := 0
	for _, pid := range pids {
		if err := unix.Kill(pid, sig); err == nil {
			signaled++
		}
	}
	return signaled
}

// pidsByComm scans /proc for processes whose comm equals name.
func pidsByComm(name string) ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	var pids []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(comm)) == name {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
