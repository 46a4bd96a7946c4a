package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManifestErrorInvariants(t *testing.T) {
	err := NewManifestError("abcdefgh", "Unrecognized manifest key 'not_a_real_key'.",
		"not_a_real_key", "")

	assert.Equal(t, TypeManifest, err.Type)
	assert.Equal(t, ID("abcdefgh"), err.ExtensionID)
	// Manifest errors always report the manifest file as their source and
	// are never attributed to incognito.
	assert.Equal(t, "manifest.json", err.Source)
	assert.False(t, err.FromIncognito)
	assert.Equal(t, "not_a_real_key", err.ManifestKey)
	assert.Empty(t, err.ManifestSpecific)
}

func TestNewRuntimeError(t *testing.T) {
	stack := StackTrace{
		NewStackFrame("chrome-extension://aaaabbbbccccddddeeeeffffgggghhhh/content_script.js", "logHelloWorld", 6, 11),
	}
	err := NewRuntimeError("aaaabbbbccccddddeeeeffffgggghhhh",
		"chrome-extension://aaaabbbbccccddddeeeeffffgggghhhh/content_script.js",
		"Hello, World!", false, SeverityInfo, "http://localhost:8000/test-errors", stack)

	assert.Equal(t, TypeRuntime, err.Type)
	assert.Equal(t, SeverityInfo, err.Severity)
	assert.Equal(t, "http://localhost:8000/test-errors", err.ContextURL)
	require.Len(t, err.StackTrace, 1)
	assert.Equal(t, "logHelloWorld", err.StackTrace[0].Function)
}

func TestGenerateID(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 50; i++ {
		id := GenerateID()
		require.True(t, id.Valid(), "generated id %q must be 32 chars of a-p", id)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestIDValid(t *testing.T) {
	assert.True(t, ID("abcdefghijklmnopabcdefghijklmnop").Valid())
	assert.False(t, ID("short").Valid())
	assert.False(t, ID("abcdefghijklmnopabcdefghijklmnoz").Valid(), "z is outside the alphabet")
	assert.False(t, ID("ABCDEFGHIJKLMNOPABCDEFGHIJKLMNOP").Valid())
}

func TestIDFromSourceURL(t *testing.T) {
	id, ok := IDFromSourceURL("chrome-extension://abcdefghijklmnopabcdefghijklmnop/background.js")
	require.True(t, ok)
	assert.Equal(t, ID("abcdefghijklmnopabcdefghijklmnop"), id)

	// Bare origin, no path.
	id, ok = IDFromSourceURL("chrome-extension://abcdefghijklmnopabcdefghijklmnop")
	require.True(t, ok)
	assert.Equal(t, ID("abcdefghijklmnopabcdefghijklmnop"), id)

	_, ok = IDFromSourceURL("http://localhost:8000/test-errors")
	assert.False(t, ok)

	_, ok = IDFromSourceURL("chrome-extension://tooshort/x.js")
	assert.False(t, ok)

	_, ok = IDFromSourceURL("extensions::event_bindings")
	assert.False(t, ok)
}

func TestBaseURL(t *testing.T) {
	id := ID("abcdefghijklmnopabcdefghijklmnop")
	assert.Equal(t, "chrome-extension://abcdefghijklmnopabcdefghijklmnop/", id.BaseURL())
}
