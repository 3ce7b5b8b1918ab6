package worker

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStandby   = "Daily step reset in standby"
	LogMsgDailyResetApproach  = "Daily step reset scheduled"
	LogMsgDailyResetStarting  = "Daily step reset starting"
	LogMsgDailyResetCompleted = "Daily step reset completed"
	LogMsgDailyResetFailed    = "Daily step reset failed"
)
