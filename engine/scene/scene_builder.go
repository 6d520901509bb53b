package scene

import "github.com/Carmen-Shannon/oxy-pano/internal/logger"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene starts out drawn. Scenes are active by default.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLogger sets the logger used for scene lifecycle messages.
//
// Parameters:
//   - log: the logger, nil keeps the no-op default
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log logger.Logger) SceneBuilderOption {
	return func(s *scene) {
		if log != nil {
			s.log = log
		}
	}
}
