package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/kalender/internal/security"
	"github.com/terraincognita07/kalender/internal/services"
)

const temporaryPasswordLength = 12

var errPasswordsDiffer = errors.New("passwords do not match")

// RunSetPasswordCommand sets the owner password, creating the owner on first
// use.
func RunSetPasswordCommand(ctx context.Context, auth *services.AuthService, readPassword PasswordReader, out io.Writer) error {
	password, err := readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirm, err := readPassword("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirm {
		return errPasswordsDiffer
	}

	if err := auth.SetPassword(ctx, password, false); err != nil {
		if errors.Is(err, services.ErrWeakPassword) {
			return err
		}
		return fmt.Errorf("set password: %w", err)
	}

	fmt.Fprintln(out, "Password updated.")
	return nil
}

// RunResetPasswordCommand replaces the owner password with a generated one
// that must be changed after the next login.
func RunResetPasswordCommand(ctx context.Context, auth *services.AuthService, out io.Writer) error {
	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := auth.SetPassword(ctx, temporaryPassword, true); err != nil {
		return fmt.Errorf("update owner password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Change it after the next login.")
	return nil
}

// RunStatusCommand prints today's cycle summary.
func RunStatusCommand(ctx context.Context, periods *services.PeriodService, out io.Writer) error {
	overview, err := periods.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Today:               %s\n", overview.Today)
	fmt.Fprintf(out, "Phase:               %s\n", overview.CurrentPhase)
	fmt.Fprintf(out, "Average cycle:       %d days\n", overview.AverageCycleLength)
	fmt.Fprintf(out, "Average period:      %d days\n", overview.AveragePeriodLength)
	if overview.CurrentCycleDay != nil {
		fmt.Fprintf(out, "Cycle day:           %d\n", *overview.CurrentCycleDay)
	} else {
		fmt.Fprintln(out, "Cycle day:           -")
	}
	if overview.PredictedNextCycleStart != nil && overview.DaysUntilNextPeriod != nil {
		fmt.Fprintf(out, "Next period:         %s (in %d days)\n",
			services.FormatDay(*overview.PredictedNextCycleStart),
			*overview.DaysUntilNextPeriod,
		)
	} else {
		fmt.Fprintln(out, "Next period:         no data yet")
	}
	return nil
}
