package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/client/clienttest"
	"github.com/dmitrijs2005/spabook/internal/client/config"
	"github.com/dmitrijs2005/spabook/internal/client/timer/timertest"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "")
}

// captureOutput swaps printlnFn for a recorder.
func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := fmt.Sprintln(a...)
		o.mu.Lock()
		o.lines = append(o.lines, s)
		o.mu.Unlock()
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func newTestApp(t *testing.T, api *clienttest.Fake, input string) (*App, *timertest.Scheduler) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(cfg, db, api, logging.Nop{}, bufio.NewReader(strings.NewReader(input)), io.Discard)
	sched := timertest.New()
	a.scheduler = sched
	t.Cleanup(a.Close)
	return a, sched
}
