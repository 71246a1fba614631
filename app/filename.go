package app

import "strings"

var unsafeFilenameChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SafeFilename replaces the characters Windows and POSIX file systems
// reject with underscores
func SafeFilename(title string) string {
	return unsafeFilenameChars.Replace(title)
}
