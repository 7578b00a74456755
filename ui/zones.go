package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneChatPane  = "zone-chat-pane"
	ZoneChatInput = "zone-chat-input"
	ZoneTaskPane  = "zone-task-pane"
	ZoneRetry     = "zone-retry"
)

// TaskRowZoneID returns the zone ID for a task table row by its display index.
func TaskRowZoneID(idx int) string {
	return fmt.Sprintf("zone-task-row-%d", idx)
}
