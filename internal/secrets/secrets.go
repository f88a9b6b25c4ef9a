// Package secrets detects likely credentials in command text. Records are
// stored in plain text, so the dispatcher warns before persisting anything
// that matches.
package secrets

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

type pattern struct {
	label string
	re    *regexp.Regexp
}

// patterns are compiled once at package init.
var patterns = []pattern{
	{"Stripe key", regexp.MustCompile(`(?i)sk_(?:live|test)_[a-zA-Z0-9]+`)},
	{"GitHub token", regexp.MustCompile(`ghp_[a-zA-Z0-9]+`)},
	{"AWS access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"Slack token", regexp.MustCompile(`xoxb-[a-zA-Z0-9-]+`)},
	{"private key", regexp.MustCompile(`-----BEGIN (?:RSA )?PRIVATE KEY-----`)},
	{"JWT", regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+`)},
	{"password assignment", regexp.MustCompile(`(?i)password\s*[:=]\s*\S+`)},
	{"secret assignment", regexp.MustCompile(`(?i)secret\s*[:=]\s*\S+`)},
	{"API key assignment", regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*\S+`)},
}

// Detect returns a label for each kind of credential found in text, plus
// "custom pattern" for any extra pattern that matches.
func Detect(text string, extra []*regexp.Regexp) []string {
	var found []string
	for _, p := range patterns {
		if p.re.MatchString(text) {
			found = append(found, p.label)
		}
	}
	for _, re := range extra {
		if re.MatchString(text) {
			found = append(found, "custom pattern")
			break
		}
	}
	return found
}

// LoadIgnore reads a secretignore file and compiles each non-blank,
// non-comment line as a regular expression. A missing file is not an error.
func LoadIgnore(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, scanner.Err()
}
