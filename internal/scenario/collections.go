package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/types"
)

// PersonalData holds the name pools.
type PersonalData struct {
	CompanyNames []string `yaml:"company_name"`
	PersonNames  []string `yaml:"person_name"`
	BotNames     []string `yaml:"bot_name"`
}

// Tasks maps a topic to its actionable items.
type Tasks map[string][]string

type tasksFile struct {
	Items Tasks `yaml:"topics_actionable_items"`
}

type Medium struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type mediaFile struct {
	Media []Medium `yaml:"media_type"`
}

type described struct {
	Description string `yaml:"description"`
}

// ProfilePools are the per-role persona building blocks.
type ProfilePools struct {
	Characteristics []described   `yaml:"characteristics"`
	Styles          []types.Trait `yaml:"conversational_styles"`
	Emotions        []types.Trait `yaml:"emotional_statuses"`
	Experience      []described   `yaml:"experience"`
	Goals           []described   `yaml:"goals"`
}

type serviceFile struct {
	Profile ProfilePools `yaml:"service_agent_profile"`
}

type customerFile struct {
	Profile ProfilePools `yaml:"customer_agent_profile"`
}

// Collections is everything a Sampler draws from for one variant.
type Collections struct {
	Personal PersonalData
	Tasks    Tasks
	Media    []Medium
	Service  ProfilePools
	Customer ProfilePools
}

// LoadCollections reads the YAML files of a variant below dir:
//
//	<dir>/<profiles>/personal_data.yaml
//	<dir>/<profiles>/service_agents.yaml
//	<dir>/<profiles>/customer_agents.yaml
//	<dir>/tasks_<lang>.yaml
//	<dir>/media_type.yaml
func LoadCollections(dir string, v Variant) (*Collections, error) {
	profiles := filepath.Join(dir, v.ProfileDir())

	var (
		c        Collections
		tasks    tasksFile
		media    mediaFile
		service  serviceFile
		customer customerFile
	)
	files := []struct {
		path string
		dst  any
	}{
		{filepath.Join(profiles, "personal_data.yaml"), &c.Personal},
		{filepath.Join(dir, v.TasksFile()), &tasks},
		{filepath.Join(dir, "media_type.yaml"), &media},
		{filepath.Join(profiles, "service_agents.yaml"), &service},
		{filepath.Join(profiles, "customer_agents.yaml"), &customer},
	}
	for _, f := range files {
		if err := readYAML(f.path, f.dst); err != nil {
			return nil, err
		}
	}
	c.Tasks = tasks.Items
	c.Media = media.Media
	c.Service = service.Profile
	c.Customer = customer.Profile
	return &c, nil
}

func readYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &dataset.ResourceLoadError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return &dataset.ResourceLoadError{Path: path, Err: fmt.Errorf("decode yaml: %w", err)}
	}
	return nil
}
