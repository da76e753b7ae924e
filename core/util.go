package core

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// JoinIDs renders ids as a comma separated list: "1,2,3".
func JoinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// ErrInvalidIDs is returned by ParseIDs for a list holding a non-integer.
var ErrInvalidIDs = errors.New("invalid id")

// ParseIDs parses a comma separated list of ids, ignoring blank entries.
func ParseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidIDs, "%q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
