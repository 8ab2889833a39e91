package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/matjam/crossfade/internal/crossfade"
	"github.com/matjam/crossfade/internal/scene"
	"github.com/matjam/crossfade/internal/types"
)

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetFloat64(key) * float64(time.Second))
}

// SceneOptions reads the scene settings from v.
func SceneOptions(v *viper.Viper) (scene.Options, error) {
	easing, err := types.ParseEasingMode(v.GetString("easing"))
	if err != nil {
		return scene.Options{}, err
	}

	timing := crossfade.Timing{
		Delay:       seconds(v, "delay"),
		Duration:    seconds(v, "duration"),
		RepeatDelay: seconds(v, "repeat_delay"),
		Easing:      easing,
	}
	if timing.Delay < 0 || timing.RepeatDelay < 0 {
		return scene.Options{}, fmt.Errorf("delay and repeat_delay must not be negative")
	}
	if timing.Duration <= 0 {
		return scene.Options{}, fmt.Errorf("duration must be positive, got %v", timing.Duration)
	}

	damping := v.GetFloat64("damping")
	if damping <= 0 || damping > 1 {
		return scene.Options{}, fmt.Errorf("damping must be in (0, 1], got %v", damping)
	}

	return scene.Options{
		Background:     v.GetString("background"),
		CameraDistance: float32(v.GetFloat64("camera_distance")),
		Damping:        float32(damping),
		Timing:         timing,
	}, nil
}
