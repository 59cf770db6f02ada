package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/studiowebux/apiconsole/internal/activity"
)

// activityLayout is how journal timestamps print in text output
const activityLayout = "2006-01-02 15:04:05"

var errActivityDisabled = errors.New("activity journal is disabled (activity_enabled: false)")

// ShowActivity prints the newest journal entries
func ShowActivity(env *Env, limit int) error {
	store, _, err := env.openJournal()
	if err != nil {
		return err
	}
	if store == nil {
		return errActivityDisabled
	}
	if limit <= 0 {
		limit = activity.DefaultLimit
	}

	entries, err := store.Load(limit)
	if err != nil {
		return err
	}
	return env.print(entries, func(w *tabwriter.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, "No activity recorded")
			return
		}
		fmt.Fprintln(w, "TIME\tOPERATION\tTARGET\tOUTCOME\tMESSAGE")
		for _, e := range entries {
			target := e.TargetName
			if target == "" {
				target = e.TargetID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format(activityLayout), e.Operation, target, e.Outcome, e.Message)
		}
	})
}

// ClearActivity empties the journal after confirmation
func ClearActivity(env *Env, yes bool) error {
	store, _, err := env.openJournal()
	if err != nil {
		return err
	}
	if store == nil {
		return errActivityDisabled
	}
	if !env.confirmer(yes).Confirm("Clear the local activity journal?") {
		return errors.New("clear cancelled by user")
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(env.Err, "Activity cleared")
	return nil
}
