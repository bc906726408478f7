package osutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/pbnjay/memory"
)

const (
	// This is the default value for cgroup's limit_in_bytes. This is not a
	// valid value and indicates that the memory is not restricted.
	// See https://unix.stackexchange.com/questions/420906/what-is-the-value-for-the-cgroups-limit-in-bytes-if-the-memory-is-not-restricted
	unrestrictedMemoryLimit = 9223372036854771712

	// cgroup v2 reports an unrestricted limit as the literal "max"
	unrestrictedCgroupV2Limit = "max"
)

var cgroupMemoryLimitLocations = []string{
	"/sys/fs/cgroup/memory.max",
	"/sys/fs/cgroup/memory/memory.limit_in_bytes",
}

// GetTotalMemory returns the total available memory size. The call is
// container-aware.
func GetTotalMemory() uint64 {
	return getTotalMemory(memory.TotalMemory(), cgroupMemoryLimitLocations)
}

func getTotalMemory(totalMemory uint64, limitLocations []string) uint64 {
	for _, location := range limitLocations {
		contents, err := os.ReadFile(location)
		if err != nil {
			continue
		}

		limit, ok := parseMemoryLimit(string(contents))
		if ok && limit < totalMemory {
			return limit
		}
		return totalMemory
	}
	return totalMemory
}

func parseMemoryLimit(contents string) (uint64, bool) {
	value := strings.TrimSpace(contents)
	if value == unrestrictedCgroupV2Limit {
		return 0, false
	}

	limit, err := strconv.ParseUint(value, 10, 64)
	if err != nil || limit == 0 || limit == unrestrictedMemoryLimit {
		return 0, false
	}
	return limit, true
}
