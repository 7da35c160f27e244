package config

import "strings"

// SourceType selects how package documents are fetched.
type SourceType string

const (
	SourceLocal SourceType = "local"
	SourceGit   SourceType = "git"
)

// NormalizeSourceType returns the canonical type for raw, or "" when unknown.
func NormalizeSourceType(raw string) SourceType {
	switch SourceType(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceLocal:
		return SourceLocal
	case SourceGit:
		return SourceGit
	}
	return ""
}

// IsValid reports whether t is a known source type.
func (t SourceType) IsValid() bool {
	return t == SourceLocal || t == SourceGit
}
