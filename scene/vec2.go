package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Vec2 is a 2D vector written either as [x, y] or as {x: .., y: ..}
type Vec2 mgl64.Vec2

// Vec returns the vector as an mgl64.Vec2
func (v Vec2) Vec() mgl64.Vec2 {
	return mgl64.Vec2(v)
}

func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := node.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: vector needs 2 components, got %d", node.Line, len(xy))
		}
		*v = Vec2{xy[0], xy[1]}

	case yaml.MappingNode:
		var xy struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := node.Decode(&xy); err != nil {
			return err
		}
		*v = Vec2{xy.X, xy.Y}

	default:
		return fmt.Errorf("line %d: vector must be a sequence or a mapping", node.Line)
	}

	return nil
}
