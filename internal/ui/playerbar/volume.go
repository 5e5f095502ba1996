package playerbar

import (
	"fmt"

	"github.com/llehouerou/handoff/internal/icons"
)

// RenderVolume renders the volume indicator.
// Format: "vol   80%" or "mute  80%" when muted
func RenderVolume(volume int, muted bool) string {
	return timeStyle().Render(fmt.Sprintf("%-4s %3d%%", icons.Volume(muted), volume))
}
