package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/cli/backups"
	"github.com/julianstephens/niyyah/internal/cli/journey"
	"github.com/julianstephens/niyyah/internal/cli/system"
	"github.com/julianstephens/niyyah/internal/config"
	"github.com/julianstephens/niyyah/internal/constants"
	apperrors "github.com/julianstephens/niyyah/internal/errors"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/scheduler"
)

var CLI struct {
	Version  kong.VersionFlag
	Store    string `help:"Store to use: a SQLite path, a .json path, 'memory', 'postgres' (connection from NIYYAH_DB_CONNECTION or the OS keyring) or a PostgreSQL connection string without credentials." default:"${default_store}" env:"NIYYAH_STORE"`
	Timezone string `help:"IANA timezone used for the 5 AM day boundary. Defaults to the system timezone." env:"NIYYAH_TIMEZONE"`
	DebugLog bool   `name:"debug" help:"Write debug logs to stderr and the log file." env:"NIYYAH_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize niyyah storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Start        journey.StartCmd        `cmd:"" help:"Begin the 369-day journey today."`
	Status       journey.StatusCmd       `cmd:"" help:"Show today's slots, day count and streak."`
	Write        journey.WriteCmd        `cmd:"" help:"Write the open slot's affirmation, one repetition per line."`
	Check        journey.CheckCmd        `cmd:"" help:"Score text against an affirmation without recording anything."`
	History      journey.HistoryCmd      `cmd:"" help:"Show a month of completion history."`
	Achievements journey.AchievementsCmd `cmd:"" help:"Show unlocked achievements."`
	Reminders    journey.RemindersCmd    `cmd:"" help:"Show the planned reminder schedule."`
	Reset        system.ResetCmd         `cmd:"" help:"Erase the journey and start over."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Config struct {
		SetConnection   system.SetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ShowConnection  system.ShowConnectionCmd  `cmd:"" help:"Show the stored connection string with the password masked."`
		ClearConnection system.ClearConnectionCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
	} `cmd:"" help:"Manage configuration."`
	Debug system.DebugCmd `cmd:"" help:"Debug commands for troubleshooting."`
}

// needsLoad reports whether command expects an initialized store.
func needsLoad(command string) bool {
	switch {
	case command == "init", command == "doctor":
		return false
	case strings.HasPrefix(command, "config "):
		return false
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Niyyah 369: write your affirmation three, six and nine times a day for 369 days."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(config.Loader, constants.DefaultConfigFile),
		kong.Vars{
			"version":       constants.Version,
			"default_store": constants.DefaultConfigPath,
			"reminder_days": "14",
		},
	)

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.DebugLog,
		ConfigDir: config.ExpandPath(constants.DefaultConfigDir),
		Quiet:     command == "tui",
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", command, "version", constants.Version)

	loc, err := config.Location(CLI.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.NewStore(CLI.Store)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		Scheduler:  scheduler.New(store),
		Location:   loc,
		ConfigFile: constants.DefaultConfigFile,
	}

	// Init and doctor handle their own loading
	if needsLoad(command) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	runErr := ctx.Run(appCtx)
	if err := appCtx.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	apperrors.Fatal(runErr)
}
