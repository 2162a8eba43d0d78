package utils

import "time"

// ictZone is Vietnam local time (UTC+7). Display strings are rendered in this
// zone regardless of where the server runs.
var ictZone = time.FixedZone("ICT", 7*3600)

// FormatDate renders a time as the dd/mm/yyyy display form used on labels.
func FormatDate(t time.Time) string {
	return t.In(ictZone).Format("02/01/2006")
}

// FormatDateUnix renders unix seconds as a dd/mm/yyyy display string.
func FormatDateUnix(sec int64) string {
	return FormatDate(time.Unix(sec, 0))
}

// FormatDateTime renders a time with seconds for the scan audit log.
func FormatDateTime(t time.Time) string {
	return t.In(ictZone).Format("15:04:05 02/01/2006")
}
