package cli

import (
	"github.com/tgienger/dispatch/internal/dispatch"
)

// FormatError returns the line printed for a failed command.
// Input problems get the same wording the UI shows in its message box.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if dispatch.IsUserError(err) {
		title, body := dispatch.UserMessage(err)
		return title + ": " + body
	}
	return "Error: " + err.Error()
}
