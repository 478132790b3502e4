package constants

import "time"

const (
	AppName            = "niyyah"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/niyyah"
	DefaultConfigPath  = "~/.config/niyyah/niyyah.db"
	DefaultConfigFile  = "~/.config/niyyah/config.jsonc"
	EnvPrefix          = "NIYYAH_"
	EnvDBConnection    = "NIYYAH_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DayBoundaryHour is the local hour at which a new effective day begins.
	DayBoundaryHour = 5

	// JourneyLength is the number of days in a full journey. Display caps here,
	// internal tracking does not.
	JourneyLength = 369

	// MaxStreakIterations bounds the backward streak scan.
	MaxStreakIterations = 1000

	// ContentCycleDays is the size of the affirmation table.
	ContentCycleDays = 41

	// Submission thresholds owned by callers of the text validation engine.
	SubmitThresholdPercent = 80

	// Key-value store keys
	ProgressKey    = "@niyyah_369_progress"
	FirstLaunchKey = "@niyyah_369_first_launch"
	InteractionKey = "@niyyah_last_notification_interaction"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "niyyah-"
	BackupFileSuffix = ".db"

	// Reminder constants
	DefaultReminderDays = 14
	NudgeMinute         = 30

	// Lock constants
	WriterLockfileName = "niyyah-writer.lock"
	LockMaxRetries     = 3
	LockRetryDelay     = 100 * time.Millisecond
)
