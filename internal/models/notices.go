package models

// Human-readable texts published on the status topic.
const (
	NoticeOnline       = "System online"
	NoticeOffline      = "offline"
	NoticeBreakSoon    = "Alert: break soon"
	NoticeBreakStarted = "Break started"
	NoticeWorkStarted  = "Work cycle started"
	NoticeTemperature  = "Alert: temperature outside comfort range!"
	NoticeDarkness     = "Alert: environment too dark!"
	NoticePosture      = "Alert: poor posture!"
)
