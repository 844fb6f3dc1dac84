package settings

import (
	"time"
)

const (
	DEFAULT_SEGMENT_SIZE = 10 * 1024 * 1024
	LOOP_DELAY           = 50 * time.Millisecond
	QUERY_TOPIC          = "polyprojQuery"
	RESULT_TOPIC         = "polyprojOut"
	DEFAULT_PRECISION    = 6
)
