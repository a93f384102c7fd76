// Package injector inlines secret key material into configuration files
// by replacing a well-known placeholder token.
package injector

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"
)

// Placeholder is the marker string replaced with the key content.
const Placeholder = "__OIDC_KEY_PLACEHOLDER__"

// indentWidth is the fixed indentation used for keys embedded in an
// indented configuration block (e.g. a YAML literal scalar).
const indentWidth = 16

// indentLines prefixes every line of content with indent, preserving the
// original line structure.
func indentLines(content, indent string) string {
	if content == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			// SplitAfter yields a trailing empty element when the content
			// ends with a newline
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}

// Inject reads the key file and replaces the placeholder in the config
// file with its content, rewriting the config file in place.
//
// The indented placeholder variant (16 spaces + token) is tried first; the
// key is then re-indented per line and right-trimmed so it drops cleanly
// into an indented block. If only the bare token is present, the key is
// inlined without added indentation. Only the first occurrence of a
// placeholder is substituted.
//
// A config file containing neither variant is written back unchanged and
// the operation still succeeds; a warning is logged so a misconfigured
// target does not fail silently.
func Inject(keyPath, configPath string) error {
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read key file %s: %w", keyPath, err)
	}

	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	keyContent := string(keyBytes)
	configContent := string(configBytes)
	indent := strings.Repeat(" ", indentWidth)

	var newContent string
	indentedTarget := indent + Placeholder

	if strings.Contains(configContent, indentedTarget) {
		indented := strings.TrimRightFunc(indentLines(keyContent, indent), unicode.IsSpace)
		newContent = strings.Replace(configContent, indentedTarget, indented, 1)
		log.Println("Placeholder found and replaced.")
	} else if strings.Contains(configContent, Placeholder) {
		log.Println("Indented placeholder not found, trying bare replacement.")
		newContent = strings.Replace(configContent, Placeholder, keyContent, 1)
	} else {
		log.Printf("Warning: no placeholder found in %s, file left unchanged", configPath)
		newContent = configContent
	}

	// Preserve the config file's permissions when rewriting it
	mode := os.FileMode(0644)
	if info, err := os.Stat(configPath); err == nil {
		mode = info.Mode()
	}

	if err := os.WriteFile(configPath, []byte(newContent), mode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}
