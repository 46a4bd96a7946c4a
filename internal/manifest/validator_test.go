package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"error-console-api/internal/extension"
)

const testID = extension.ID("abcdefghijklmnopabcdefghijklmnop")

func TestCleanManifest(t *testing.T) {
	manifest := []byte(`{
		"manifest_version": 2,
		"name": "Good Extension",
		"version": "1.0",
		"permissions": ["tabs", "storage", "http://*/*"]
	}`)

	assert.Empty(t, Validate(testID, manifest))
}

// The canonical manifest-warnings fixture: one unknown permission and one
// unknown top-level key yield exactly two manifest errors.
func TestUnknownPermissionAndUnknownKey(t *testing.T) {
	manifest := []byte(`{
		"manifest_version": 2,
		"name": "Manifest Warnings",
		"version": "1.0",
		"permissions": ["not_a_real_permission"],
		"not_a_real_key": true
	}`)

	errs := Validate(testID, manifest)
	require.Len(t, errs, 2)

	// Key order is not guaranteed, so match each error to its expectation
	// by manifest key.
	var permissionsError, unknownKeyError *extension.Error
	for _, err := range errs {
		require.Equal(t, extension.TypeManifest, err.Type)
		switch err.ManifestKey {
		case KeyPermissions:
			permissionsError = err
		case "not_a_real_key":
			unknownKeyError = err
		}
	}
	require.NotNil(t, permissionsError)
	require.NotNil(t, unknownKeyError)

	assert.Equal(t, testID, permissionsError.ExtensionID)
	assert.Equal(t, "manifest.json", permissionsError.Source)
	assert.False(t, permissionsError.FromIncognito)
	assert.Equal(t, "Permission 'not_a_real_permission' is unknown or URL pattern is malformed.",
		permissionsError.Message)
	assert.Equal(t, "not_a_real_permission", permissionsError.ManifestSpecific)

	assert.Equal(t, testID, unknownKeyError.ExtensionID)
	assert.Equal(t, "manifest.json", unknownKeyError.Source)
	assert.False(t, unknownKeyError.FromIncognito)
	assert.Equal(t, "Unrecognized manifest key 'not_a_real_key'.", unknownKeyError.Message)
	assert.Empty(t, unknownKeyError.ManifestSpecific)
}

func TestMalformedURLPattern(t *testing.T) {
	manifest := []byte(`{
		"manifest_version": 2,
		"name": "Bad Pattern",
		"version": "1.0",
		"permissions": ["gopher://weird", "https://nopath"]
	}`)

	errs := Validate(testID, manifest)
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.Equal(t, KeyPermissions, err.ManifestKey)
	}
}

func TestValidURLPatterns(t *testing.T) {
	manifest := []byte(`{
		"manifest_version": 2,
		"name": "Patterns",
		"version": "1.0",
		"permissions": ["<all_urls>", "*://*/*", "https://example.com/"]
	}`)

	assert.Empty(t, Validate(testID, manifest))
}

func TestMissingRequiredKeys(t *testing.T) {
	errs := Validate(testID, []byte(`{"description": "missing everything"}`))
	require.Len(t, errs, 3)

	keys := make(map[string]bool)
	for _, err := range errs {
		keys[err.ManifestKey] = true
		assert.Equal(t, RequiredValueMessage(err.ManifestKey), err.Message)
	}
	assert.True(t, keys[KeyManifestVersion])
	assert.True(t, keys[KeyName])
	assert.True(t, keys[KeyVersion])
}

func TestInvalidJSONIsItselfAnError(t *testing.T) {
	errs := Validate(testID, []byte(`{not json`))
	require.Len(t, errs, 1)
	assert.Equal(t, extension.TypeManifest, errs[0].Type)
	assert.Equal(t, "Manifest is not valid JSON.", errs[0].Message)
	assert.Equal(t, "manifest.json", errs[0].Source)
}

func TestPermissionsNotAnArray(t *testing.T) {
	manifest := []byte(`{
		"manifest_version": 2,
		"name": "Bad Permissions",
		"version": "1.0",
		"permissions": "tabs"
	}`)

	errs := Validate(testID, manifest)
	require.Len(t, errs, 1)
	assert.Equal(t, KeyPermissions, errs[0].ManifestKey)
	assert.Equal(t, InvalidValueMessage(KeyPermissions), errs[0].Message)
}
