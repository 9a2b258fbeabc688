package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// AskCameraAccess shows a yes/no dialog and reports whether the user agreed.
// Must be called from the Tk thread.
func AskCameraAccess() bool {
	answer := MessageBox(
		Title("Camera access"),
		Msg("viewfinder-go wants to use your screen as a camera. Allow?"),
		Icon("question"),
		Type("yesno"),
	)
	return answer == "yes"
}
