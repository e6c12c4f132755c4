package content

import (
	"fmt"
	"time"
)

// LunarNote returns the farm-calendar line for the date. Conversion is not
// available, so ok is false and the note carries the solar date as a
// placeholder; callers render it as-is rather than failing.
func LunarNote(date time.Time) (note string, ok bool) {
	return fmt.Sprintf("農曆：暫無 - %s", date.Format("2006-01-02")), false
}
