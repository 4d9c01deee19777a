package render

import (
	"encoding/json"

	"github.com/matzehuels/popover/pkg/visibility"
)

// Document is the JSON form of a resolved scene.
type Document struct {
	Scene string           `json:"scene"`
	State visibility.State `json:"state"`
	Placed
}

// RenderJSON serializes p as an indented Document.
func RenderJSON(sceneName string, state visibility.State, p Placed) ([]byte, error) {
	return json.MarshalIndent(Document{Scene: sceneName, State: state, Placed: p}, "", "  ")
}
