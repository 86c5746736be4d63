package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives m until the user quits, ctx is cancelled, or the process gets
// SIGTERM. It closes m before returning.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	defer m.Close()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	p := tea.NewProgram(m, opts...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-sigCh:
		}
		p.Quit()
	}()

	_, err := p.Run()
	cancel(nil)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
