// Package device covers the physical cartridge side: preflight checks run
// before a sync touches the target filesystem, and a netlink monitor that
// reports cartridge insertion events.
package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckTargetWritable verifies the sync target exists, is a directory, and
// is writable by the current process.
func CheckTargetWritable(path string) Result {
	const name = "Target writable"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least required
// bytes available to an unprivileged writer.
func CheckFreeSpace(path string, required uint64) Result {
	const name = "Free space"

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if available < required {
		return Result{Name: name, Detail: fmt.Sprintf("%s available, %s required", formatBytes(available), formatBytes(required))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s available", formatBytes(available))}
}

// RunAll executes every device preflight check against the sync target.
// required is the byte total of the payload about to be copied; pass zero
// to skip the space comparison while still reporting availability.
func RunAll(targetRoot string, required uint64) []Result {
	results := []Result{CheckTargetWritable(targetRoot)}
	if results[0].Passed {
		results = append(results, CheckFreeSpace(targetRoot, required))
	}
	return results
}

// Passed reports whether every result in the set succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
