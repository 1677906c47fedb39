package exchange

import (
	"math"
	"strconv"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// Stats summarizes the stored collection for the data management view.
type Stats struct {
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	DataSize       string `json:"dataSize"`
	LastModified   string `json:"lastModified"`
}

var byteUnits = []string{"Bytes", "KB", "MB"}

// DataStats reports counts for tasks along with the human-readable size of
// the serialized collection. LastModified is the newest createdDate, or
// "Never" for an empty collection.
func DataStats(tasks []models.Task, dataSize int) Stats {
	s := Stats{
		TotalTasks:   len(tasks),
		DataSize:     formatBytes(dataSize),
		LastModified: "Never",
	}
	var latest time.Time
	for _, t := range tasks {
		if t.IsCompleted() {
			s.CompletedTasks++
		}
		if t.CreatedDate.After(latest) {
			latest = t.CreatedDate
		}
	}
	if len(tasks) > 0 {
		s.LastModified = latest.UTC().Format(time.RFC3339)
	}
	return s
}

// formatBytes renders n using 1024-based units up to MB with at most two
// decimals, e.g. "1.5 KB".
func formatBytes(n int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}
