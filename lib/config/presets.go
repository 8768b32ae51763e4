package config

import "fmt"

const (
	Variant2D = "2d"
	Variant3D = "3d"
)

// AttribNameAsShipped is the attribute name the 2D program has always
// queried for its position pointer. It names the fragment shader output,
// not the vertex input, so the lookup yields -1 on conforming drivers.
// Kept as is until someone decides which behaviour the 2D variant should
// have; set geometry.position_attribute to "position" to override.
const AttribNameAsShipped = "out_color"

func Default(variant string) (*Config, error) {
	cfg := &Config{
		Variant: variant,
		Window: WindowCfg{
			Title:     "gltriangle: Video",
			Width:     800,
			Height:    600,
			GLMajor:   3,
			GLMinor:   3,
			DepthBits: 24,
		},
		ExitKey:  "escape",
		LogLevel: "info",
	}

	switch variant {
	case Variant2D:
		cfg.Geometry = GeometryCfg{
			Dimensions: 2,
			Vertices: [][]float32{
				{0.0, 0.5},
				{0.5, -0.5},
				{-0.5, -0.5},
			},
			PositionAttribute: AttribNameAsShipped,
		}
		cfg.ClearColour = "#4c4c4cff"
		cfg.Shaders.FragmentColour = "#ffffffff"
	case Variant3D:
		cfg.Geometry = GeometryCfg{
			Dimensions: 3,
			Vertices: [][]float32{
				{0.0, 0.5, 0.0},
				{0.5, -0.5, 0.0},
				{-0.5, -0.5, 0.0},
			},
			PositionAttribute: "position",
		}
		cfg.ClearColour = "#19194cff"
		cfg.Shaders.FragmentColour = "#ff8000ff"
	default:
		return nil, fmt.Errorf("unknown variant %q (expected %s or %s)", variant, Variant2D, Variant3D)
	}
	return cfg, nil
}
