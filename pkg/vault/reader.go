package vault

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadNote reads a markdown file and parses its frontmatter and content.
// The returned note carries no scan metadata beyond path, filename and
// modification time; the scanner fills in the rest.
func ReadNote(path string) (*Note, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var frontmatterLines []string
	var contentLines []string
	inFrontmatter := false
	lineCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineCount++

		if lineCount == 1 && line == "---" {
			inFrontmatter = true
			continue
		}

		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
				continue
			}
			frontmatterLines = append(frontmatterLines, line)
		} else {
			contentLines = append(contentLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var frontmatter map[string]interface{}
	if len(frontmatterLines) > 0 {
		fmData := strings.Join(frontmatterLines, "\n")
		if err := yaml.Unmarshal([]byte(fmData), &frontmatter); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	return &Note{
		Path:        path,
		Filename:    filepath.Base(path),
		Content:     strings.Join(contentLines, "\n"),
		Frontmatter: frontmatter,
		Modified:    info.ModTime(),
	}, nil
}
