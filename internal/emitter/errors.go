package emitter

import "fmt"

// ConfigurationError reports unusable build configuration, such as a
// missing template file or a broken provenance pattern. Fatal.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// GenerationError reports an emitted module that failed the
// self-validation parse. It names the output path so the failure
// localizes to one spec file. Fatal for the whole build.
type GenerationError struct {
	Path string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generated module %s is invalid: %v", e.Path, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
