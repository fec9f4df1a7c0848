package parameter

import "time"

// Live View Layout
const (
	// LeftMargin pads every line of the live view
	LeftMargin = 2

	// TopMargin rows above the header
	TopMargin = 1

	// SparklineRunes go from lowest to highest best-fitness bucket
	SparklineRunes = "▁▂▃▄▅▆▇█"
)

// Live View Timing
const (
	// WatchFrameDelay paces generations so progress stays readable
	WatchFrameDelay = 40 * time.Millisecond

	// WatchReportBuffer is channel capacity between solver and view
	WatchReportBuffer = 16
)
