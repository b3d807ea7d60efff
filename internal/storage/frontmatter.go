// ABOUTME: YAML frontmatter parsing and rendering for markdown storage files.
// ABOUTME: Writes go through a temp file and rename so readers never see partial files.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// parseFrontmatter splits a markdown document into its YAML header and body.
// Returns an empty header when the document has none.
func parseFrontmatter(content string) (header, body string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, frontmatterDelim+"\n") {
		return "", content
	}
	rest := content[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return "", content
	}
	header = rest[:end+1]
	body = strings.TrimPrefix(rest[end+1+len(frontmatterDelim):], "\n")
	return header, body
}

// renderFrontmatter serializes v as a YAML header followed by body.
func renderFrontmatter(v interface{}, body string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontmatterDelim + "\n")
	sb.Write(buf.Bytes())
	sb.WriteString(frontmatterDelim + "\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// readFrontmatterFile decodes the YAML header of path into v and returns the body.
func readFrontmatterFile(path string, v interface{}) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths are built from the store root
	if err != nil {
		return "", err
	}
	header, body := parseFrontmatter(string(data))
	if header == "" {
		return "", fmt.Errorf("no frontmatter in %s", path)
	}
	if err := yaml.Unmarshal([]byte(header), v); err != nil {
		return "", fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return body, nil
}

// atomicWrite writes data to path via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
