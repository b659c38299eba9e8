package compose

import (
	"context"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Stack Types
// =============================================================================

// Stack is the subset of a compose project the sequencer cares about:
// which services exist and which of them are built locally.
type Stack struct {
	Services []Service
}

// Service describes one declared service.
type Service struct {
	Name  string
	Image string
	// Build is true when the service is built from a local context rather
	// than pulled from a registry.
	Build bool
}

// Names returns the service names in declaration-independent sorted order.
func (s *Stack) Names() []string {
	names := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}
	sort.Strings(names)
	return names
}

// PrimaryService picks the diagnostic log target for a failed deployment:
// the first locally built service, falling back to the first service by name.
// An explicit override always wins.
func (s *Stack) PrimaryService(override string) string {
	if override != "" {
		return override
	}
	var built []string
	for _, svc := range s.Services {
		if svc.Build {
			built = append(built, svc.Name)
		}
	}
	if len(built) > 0 {
		sort.Strings(built)
		return built[0]
	}
	names := s.Names()
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// =============================================================================
// Parser
// =============================================================================

// ParseStackFile parses compose YAML into a Stack.
// This is a pure function - no I/O, no side effects.
func ParseStackFile(yamlContent string) (*Stack, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := loadProject(yamlContent)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	stack := &Stack{Services: make([]Service, 0, len(project.Services))}
	for _, svc := range project.Services {
		stack.Services = append(stack.Services, Service{
			Name:  svc.Name,
			Image: svc.Image,
			Build: svc.Build != nil,
		})
	}
	sort.Slice(stack.Services, func(i, j int) bool {
		return stack.Services[i].Name < stack.Services[j].Name
	})

	return stack, nil
}

// loadProject loads a compose project using compose-go.
func loadProject(yamlContent string) (*types.Project, error) {
	// Parse YAML into a map first so syntax errors surface cleanly.
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if dict == nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("stackctl-temp", false)
		opts.SkipValidation = false
		opts.SkipInterpolation = true // variables come from the env file at run time
		opts.SkipNormalization = true
		opts.SkipExtends = true // don't try to load external files
	})
	if err != nil {
		return nil, NewParseError("", err.Error(), err)
	}

	return project, nil
}
