package system

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/niyyah/internal/cli"
)

// confirmReset asks before erasing a journey. Tests replace it.
var confirmReset = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description("A backup is taken first when the store is a local file.").
		Affirmative("Reset").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	l, err := ctx.AcquireWriter()
	if err != nil {
		return err
	}
	defer l.Release()

	tr, err := ctx.Journey()
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmReset("Erase your journey and all recorded progress?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Printf("Reset cancelled.\n")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := tr.Reset(); err != nil {
		return err
	}
	ctx.Printf("✓ Journey reset. Run 'niyyah start' to begin again.\n")
	return nil
}
