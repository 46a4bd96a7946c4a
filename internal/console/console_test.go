package console

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"error-console-api/internal/extension"
	"error-console-api/internal/prefs"
)

// recordingObserver mirrors the way a UI panel holds a non-owning console
// reference: it counts notifications and drops the reference on teardown.
type recordingObserver struct {
	added     []*extension.Error
	destroyed int
	console   *ErrorConsole
}

func (o *recordingObserver) OnErrorAdded(err *extension.Error) {
	o.added = append(o.added, err)
}

func (o *recordingObserver) OnErrorConsoleDestroyed() {
	o.destroyed++
	o.console = nil
}

func newTestPrefs(t *testing.T) *prefs.Service {
	t.Helper()
	svc, err := prefs.NewService(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func newEnabledConsole(t *testing.T) (*ErrorConsole, *prefs.Service) {
	t.Helper()
	svc := newTestPrefs(t)
	require.NoError(t, svc.SetBool(prefs.DeveloperMode, true))
	return New(svc, 0, nil), svc
}

func TestUnknownExtensionHasNoErrors(t *testing.T) {
	c, _ := newEnabledConsole(t)
	assert.Empty(t, c.GetErrorsForExtension("never-reported"))
}

func TestReportKeepsOrderBelowCap(t *testing.T) {
	c, _ := newEnabledConsole(t)

	const n = 10
	for i := 0; i < n; i++ {
		c.ReportError(runtimeError("aaaa", fmt.Sprintf("error %d", i)))
	}

	errors := c.GetErrorsForExtension("aaaa")
	require.Len(t, errors, n)
	for i, err := range errors {
		assert.Equal(t, fmt.Sprintf("error %d", i), err.Message)
	}
	assert.Equal(t, n, c.TotalEntries())
}

func TestDontStoreErrorsWithoutDeveloperMode(t *testing.T) {
	svc := newTestPrefs(t)
	c := New(svc, 0, nil)
	require.False(t, c.Enabled())

	observer := &recordingObserver{console: c}
	c.AddObserver(observer)
	defer c.RemoveObserver(observer)

	// Reports while developer mode is off vanish without notifying anyone.
	c.ReportError(runtimeError("aaaa", "dropped"))
	assert.Empty(t, c.GetErrorsForExtension("aaaa"))
	assert.Empty(t, observer.added)
	assert.Zero(t, c.TotalEntries())

	// Enabling does not resurrect dropped reports.
	require.NoError(t, svc.SetBool(prefs.DeveloperMode, true))
	assert.Empty(t, c.GetErrorsForExtension("aaaa"))

	c.ReportError(runtimeError("aaaa", "kept"))
	require.Len(t, c.GetErrorsForExtension("aaaa"), 1)
	require.Len(t, observer.added, 1)

	// Disabling purges everything, unconditionally.
	require.NoError(t, svc.SetBool(prefs.DeveloperMode, false))
	assert.Empty(t, c.GetErrorsForExtension("aaaa"))
	assert.Zero(t, c.TotalEntries())

	// And re-enabling starts from an empty store.
	require.NoError(t, svc.SetBool(prefs.DeveloperMode, true))
	assert.Empty(t, c.GetErrorsForExtension("aaaa"))
}

func TestObserversNotifiedInRegistrationOrder(t *testing.T) {
	c, _ := newEnabledConsole(t)

	var order []string
	first := &funcObserver{onAdded: func(*extension.Error) { order = append(order, "first") }}
	second := &funcObserver{onAdded: func(*extension.Error) { order = append(order, "second") }}
	c.AddObserver(first)
	c.AddObserver(second)

	c.ReportError(runtimeError("aaaa", "x"))
	assert.Equal(t, []string{"first", "second"}, order)
}

type funcObserver struct {
	onAdded     func(*extension.Error)
	onDestroyed func()
}

func (o *funcObserver) OnErrorAdded(err *extension.Error) {
	if o.onAdded != nil {
		o.onAdded(err)
	}
}

func (o *funcObserver) OnErrorConsoleDestroyed() {
	if o.onDestroyed != nil {
		o.onDestroyed()
	}
}

func TestRemovedObserverNotNotified(t *testing.T) {
	c, _ := newEnabledConsole(t)

	observer := &recordingObserver{console: c}
	c.AddObserver(observer)
	c.ReportError(runtimeError("aaaa", "one"))
	c.RemoveObserver(observer)
	c.ReportError(runtimeError("aaaa", "two"))

	require.Len(t, observer.added, 1)
	assert.Equal(t, "one", observer.added[0].Message)
}

func TestRemoveUnregisteredObserverIsNoop(t *testing.T) {
	c, _ := newEnabledConsole(t)
	assert.NotPanics(t, func() {
		c.RemoveObserver(&recordingObserver{})
	})
}

func TestEvictionBeyondCapDropsGlobalOldest(t *testing.T) {
	svc := newTestPrefs(t)
	require.NoError(t, svc.SetBool(prefs.DeveloperMode, true))
	c := New(svc, 3, nil)

	c.ReportError(runtimeError("aaaa", "oldest"))
	c.ReportError(runtimeError("bbbb", "b0"))
	c.ReportError(runtimeError("bbbb", "b1"))
	c.ReportError(runtimeError("bbbb", "b2"))

	assert.Equal(t, 3, c.TotalEntries())
	assert.Empty(t, c.GetErrorsForExtension("aaaa"),
		"the globally-oldest record goes first regardless of owner")
	assert.Len(t, c.GetErrorsForExtension("bbbb"), 3)
}

func TestNilReportIgnored(t *testing.T) {
	c, _ := newEnabledConsole(t)
	c.ReportError(nil)
	assert.Zero(t, c.TotalEntries())
}

func TestGetErrorsReturnsCopy(t *testing.T) {
	c, _ := newEnabledConsole(t)
	c.ReportError(runtimeError("aaaa", "x"))

	first := c.GetErrorsForExtension("aaaa")
	first[0] = nil
	second := c.GetErrorsForExtension("aaaa")
	require.NotNil(t, second[0])
	assert.Equal(t, "x", second[0].Message)
}

func TestDestroyBroadcastsExactlyOnce(t *testing.T) {
	c, _ := newEnabledConsole(t)

	observer := &recordingObserver{console: c}
	c.AddObserver(observer)

	c.destroy()
	assert.Equal(t, 1, observer.destroyed)
	assert.Nil(t, observer.console, "observers null their reference on teardown")

	// Idempotent: a second destroy notifies nobody.
	c.destroy()
	assert.Equal(t, 1, observer.destroyed)
}

func TestReportAfterDestroyPanics(t *testing.T) {
	c, _ := newEnabledConsole(t)
	c.destroy()
	assert.Panics(t, func() {
		c.ReportError(runtimeError("aaaa", "too late"))
	})
}

func TestPrefChangeAfterDestroyIgnored(t *testing.T) {
	c, svc := newEnabledConsole(t)
	c.destroy()
	assert.NotPanics(t, func() {
		// The subscription is dropped on destroy; flipping the pref again
		// must not touch the dead console.
		require.NoError(t, svc.SetBool(prefs.DeveloperMode, false))
	})
}
