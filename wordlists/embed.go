// Package wordlists ships the default danger and safe phrase lists.
package wordlists

import "embed"

// Default file names and their pinned SHA-256 digests.
const (
	DangerFile   = "danger_words.txt"
	DangerSHA256 = "d925ef303fbf61fe57546cde5843798301d57927d52d1736380dbbcfe3804f85"
	SafeFile     = "safe_words.txt"
	SafeSHA256   = "b40965f2e1e480973dc95dd3d7bc1eae6667fcd332db4c30167eab9c959b3525"
)

// FS holds the embedded default lists.
//
//go:embed danger_words.txt safe_words.txt
var FS embed.FS
