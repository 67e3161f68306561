package gitrepo

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

var (
	// checkoutEntry matches the message git writes to the HEAD reflog on checkout.
	checkoutEntry = regexp.MustCompile(`^checkout: moving from (\S+) to (\S+)$`)
	// creationEntry matches the first entry of a branch reflog written by
	// "git branch", "git checkout -b" and "git switch -c".
	creationEntry = regexp.MustCompile(`^branch: Created from `)
)

// previousBranchFromReflog returns the branch left by the most recent
// checkout recorded in a HEAD reflog file, or "" when there is none.
func previousBranchFromReflog(path string) (string, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open reflog: %w", err)
	}
	defer file.Close()

	previous := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		_, message, found := strings.Cut(scanner.Text(), "\t")
		if !found {
			continue
		}
		if m := checkoutEntry.FindStringSubmatch(strings.TrimSpace(message)); m != nil {
			previous = m[1]
		}
	}
	if err = scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read reflog: %w", err)
	}
	return previous, nil
}

// createdOnlyInReflog reports whether a branch reflog file has exactly one
// entry and that entry records the branch's creation. A missing reflog
// reports false.
func createdOnlyInReflog(path string) (bool, error) {
	//nolint:gosec // reflog path is derived from the git dir
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open branch reflog: %w", err)
	}
	defer file.Close()

	entries := 0
	created := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		_, message, found := strings.Cut(scanner.Text(), "\t")
		if !found {
			continue
		}
		entries++
		created = creationEntry.MatchString(strings.TrimSpace(message))
	}
	if err = scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read branch reflog: %w", err)
	}
	return entries == 1 && created, nil
}
