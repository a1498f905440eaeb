package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Stay03/transcribeThis/internal/client/guard"
	"github.com/Stay03/transcribeThis/internal/client/models"
)

// requireAuth gates a command on an authenticated session. It prints the
// redirect hint itself and reports whether the command may proceed.
func (a *App) requireAuth() bool {
	switch guard.RequiresAuth(a.session.Snapshot()) {
	case guard.DecisionRender:
		return true
	case guard.DecisionLoading:
		fmt.Fprintln(a.out, "Session is still loading, try again in a moment.")
	default:
		fmt.Fprintln(a.out, "You need to log in first.")
	}
	return false
}

// Transcribe prompts for an audio file path and an optional steering prompt,
// uploads the file, and prints the result. The fresh transcription is placed
// at the top of the local history list.
func (a *App) Transcribe(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to audio file", a.out)
	if err != nil {
		return err
	}
	prompt, err := getSimpleText(a.reader, "Prompt (optional, press Enter to skip)", a.out)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(a.out, "Uploading...")
	tr, err := a.api.Transcribe(ctx, filepath.Base(path), f, prompt)
	if err != nil {
		return err
	}

	a.transcriptions.Prepend(*tr)
	a.printTranscription(tr)
	return nil
}

// History lists one page of past transcriptions. An optional page number
// argument switches pages.
func (a *App) History(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}

	if len(args) > 0 {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: history [page]")
			return nil
		}
		a.transcriptions.SetPage(page)
	}

	if err := a.transcriptions.Fetch(ctx); err != nil {
		return err
	}

	state := a.transcriptions.State()
	if len(state.Items) == 0 {
		fmt.Fprintln(a.out, "No transcriptions yet.")
		return nil
	}
	for _, item := range state.Items {
		fmt.Fprintf(a.out, "%6d  %-12s  %s\n", item.ID, item.Status, item.OriginalFilename)
	}
	if p := state.Pagination; p != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d total)\n", p.CurrentPage, p.LastPage, p.Total)
	}
	return nil
}

// Show prints a single transcription in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	tr, err := a.api.Transcription(ctx, id)
	if err != nil {
		return err
	}
	a.printTranscription(tr)
	return nil
}

// Delete removes a transcription.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireAuth() {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	if err := a.transcriptions.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) printTranscription(tr *models.Transcription) {
	fmt.Fprintf(a.out, "ID:       %d\n", tr.ID)
	fmt.Fprintf(a.out, "File:     %s (%.1f MB)\n", tr.OriginalFilename, tr.FileSizeMB)
	fmt.Fprintf(a.out, "Status:   %s\n", tr.Status)
	if tr.Prompt != "" {
		fmt.Fprintf(a.out, "Prompt:   %s\n", tr.Prompt)
	}
	if tr.Status == models.TranscriptionCompleted {
		fmt.Fprintln(a.out, "Result:")
		fmt.Fprintln(a.out, tr.TranscriptionResult)
	}
}
