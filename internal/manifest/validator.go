// Package manifest validates extension manifests and reports every problem
// as a manifest error record. Validation never fails as such: malformed
// input is itself the payload.
package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"error-console-api/internal/extension"
)

// Manifest keys with dedicated handling.
const (
	KeyManifestVersion = "manifest_version"
	KeyName            = "name"
	KeyVersion         = "version"
	KeyPermissions     = "permissions"
)

var requiredKeys = []string{KeyManifestVersion, KeyName, KeyVersion}

var knownKeys = map[string]bool{
	KeyManifestVersion:         true,
	KeyName:                    true,
	KeyVersion:                 true,
	KeyPermissions:             true,
	"author":                   true,
	"background":               true,
	"browser_action":           true,
	"commands":                 true,
	"content_scripts":          true,
	"content_security_policy":  true,
	"default_locale":           true,
	"description":              true,
	"devtools_page":            true,
	"homepage_url":             true,
	"icons":                    true,
	"incognito":                true,
	"key":                      true,
	"minimum_chrome_version":   true,
	"omnibox":                  true,
	"optional_permissions":     true,
	"options_page":             true,
	"page_action":              true,
	"short_name":               true,
	"update_url":               true,
	"web_accessible_resources": true,
}

var knownPermissions = map[string]bool{
	"activeTab":          true,
	"alarms":             true,
	"bookmarks":          true,
	"clipboardRead":      true,
	"clipboardWrite":     true,
	"contextMenus":       true,
	"cookies":            true,
	"downloads":          true,
	"geolocation":        true,
	"history":            true,
	"idle":               true,
	"management":         true,
	"notifications":      true,
	"storage":            true,
	"tabs":               true,
	"topSites":           true,
	"unlimitedStorage":   true,
	"webNavigation":      true,
	"webRequest":         true,
	"webRequestBlocking": true,
}

var patternSchemes = map[string]bool{
	"*":     true,
	"http":  true,
	"https": true,
	"ftp":   true,
	"file":  true,
}

// Error message templates, matching the strings the developer UI shows.
func PermissionUnknownMessage(permission string) string {
	return fmt.Sprintf("Permission '%s' is unknown or URL pattern is malformed.", permission)
}

func UnrecognizedKeyMessage(key string) string {
	return fmt.Sprintf("Unrecognized manifest key '%s'.", key)
}

func RequiredValueMessage(key string) string {
	return fmt.Sprintf("Required value '%s' is missing or invalid.", key)
}

func InvalidValueMessage(key string) string {
	return fmt.Sprintf("Invalid value for '%s'.", key)
}

const notValidJSONMessage = "Manifest is not valid JSON."

// Validate checks the raw manifest document for id and returns one manifest
// error per problem found. A clean manifest yields an empty slice. Key order
// in the result is not guaranteed.
func Validate(id extension.ID, data []byte) []*extension.Error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*extension.Error{
			extension.NewManifestError(id, notValidJSONMessage, "", ""),
		}
	}

	var errs []*extension.Error

	for _, key := range requiredKeys {
		if _, ok := doc[key]; !ok {
			errs = append(errs, extension.NewManifestError(
				id, RequiredValueMessage(key), key, ""))
		}
	}

	for key, value := range doc {
		if !knownKeys[key] {
			errs = append(errs, extension.NewManifestError(
				id, UnrecognizedKeyMessage(key), key, ""))
			continue
		}
		if key == KeyPermissions {
			errs = append(errs, validatePermissions(id, value)...)
		}
	}

	return errs
}

func validatePermissions(id extension.ID, raw json.RawMessage) []*extension.Error {
	var permissions []string
	if err := json.Unmarshal(raw, &permissions); err != nil {
		return []*extension.Error{
			extension.NewManifestError(id, InvalidValueMessage(KeyPermissions), KeyPermissions, ""),
		}
	}

	var errs []*extension.Error
	for _, p := range permissions {
		if knownPermissions[p] || validMatchPattern(p) {
			continue
		}
		errs = append(errs, extension.NewManifestError(
			id, PermissionUnknownMessage(p), KeyPermissions, p))
	}
	return errs
}

// validMatchPattern accepts host permissions of the form
// scheme://host/path, plus the <all_urls> wildcard. API permission names
// never contain "://" so anything else falls through to the known-name
// check.
func validMatchPattern(p string) bool {
	if p == "<all_urls>" {
		return true
	}
	scheme, rest, ok := strings.Cut(p, "://")
	if !ok {
		return false
	}
	if !patternSchemes[scheme] {
		return false
	}
	// Must have a non-empty host followed by a path component.
	slash := strings.IndexByte(rest, '/')
	return slash > 0
}
