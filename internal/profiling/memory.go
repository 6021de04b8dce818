package profiling

import (
	"fmt"
	"runtime"
)

// Memory is a snapshot of heap and goroutine usage.
type Memory struct {
	HeapAlloc  uint64
	HeapSys    uint64
	NumGC      uint32
	Goroutines int
}

// ReadMemory samples the runtime.
func ReadMemory() Memory {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Memory{
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		NumGC:      ms.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}

func (m Memory) String() string {
	return fmt.Sprintf("heap=%s sys=%s gc=%d goroutines=%d",
		FormatBytes(m.HeapAlloc), FormatBytes(m.HeapSys), m.NumGC, m.Goroutines)
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
