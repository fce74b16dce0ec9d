package scenario

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"dialogsynth/internal/types"
)

var ErrEmptyPool = errors.New("cannot sample from an empty pool")

// Sampler draws scenario parameters. Every field is an independent uniform
// choice from its pool; nothing is remembered between draws.
type Sampler struct {
	c       *Collections
	variant Variant
	rng     *rand.Rand
}

func NewSampler(c *Collections, v Variant, rng *rand.Rand) *Sampler {
	return &Sampler{c: c, variant: v, rng: rng}
}

func pick[T any](rng *rand.Rand, pool []T, what string) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, fmt.Errorf("sample %s: %w", what, ErrEmptyPool)
	}
	return pool[rng.IntN(len(pool))], nil
}

// Sample returns one fresh scenario.
func (s *Sampler) Sample() (types.ScenarioParameters, error) {
	var (
		p   types.ScenarioParameters
		err error
	)
	if p.Bank, err = pick(s.rng, s.c.Personal.CompanyNames, "company_name"); err != nil {
		return p, err
	}
	if p.CustomerName, err = pick(s.rng, s.c.Personal.PersonNames, "person_name"); err != nil {
		return p, err
	}
	agentNames, what := s.c.Personal.PersonNames, "person_name"
	if s.variant.BotAgents() {
		agentNames, what = s.c.Personal.BotNames, "bot_name"
	}
	if p.ServiceAgentName, err = pick(s.rng, agentNames, what); err != nil {
		return p, err
	}
	if p.Topic, p.Task, err = s.task(); err != nil {
		return p, err
	}
	medium, err := s.medium()
	if err != nil {
		return p, err
	}
	p.MediaType, p.MediaDescription = medium.Type, medium.Description

	if p.Service, err = s.profile(s.c.Service, "service"); err != nil {
		return p, err
	}
	if p.Customer, err = s.profile(s.c.Customer, "customer"); err != nil {
		return p, err
	}
	return p, nil
}

// task picks a topic, then a task within it. Topic keys are sorted so a
// seeded sampler is reproducible.
func (s *Sampler) task() (string, string, error) {
	topics := make([]string, 0, len(s.c.Tasks))
	for t := range s.c.Tasks {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	topic, err := pick(s.rng, topics, "topic")
	if err != nil {
		return "", "", err
	}
	task, err := pick(s.rng, s.c.Tasks[topic], "task of "+topic)
	if err != nil {
		return "", "", err
	}
	return topic, task, nil
}

func (s *Sampler) medium() (Medium, error) {
	fixed, ok := s.variant.FixedMedium()
	if !ok {
		return pick(s.rng, s.c.Media, "media_type")
	}
	for _, m := range s.c.Media {
		if m.Type == fixed {
			return m, nil
		}
	}
	return Medium{}, fmt.Errorf("sample media_type: no %q medium configured", fixed)
}

func (s *Sampler) profile(pools ProfilePools, role string) (types.AgentProfile, error) {
	var p types.AgentProfile
	characteristic, err := pick(s.rng, pools.Characteristics, role+" characteristics")
	if err != nil {
		return p, err
	}
	if p.Style, err = pick(s.rng, pools.Styles, role+" conversational_styles"); err != nil {
		return p, err
	}
	if p.Emotion, err = pick(s.rng, pools.Emotions, role+" emotional_statuses"); err != nil {
		return p, err
	}
	experience, err := pick(s.rng, pools.Experience, role+" experience")
	if err != nil {
		return p, err
	}
	goal, err := pick(s.rng, pools.Goals, role+" goals")
	if err != nil {
		return p, err
	}
	p.Characteristic = characteristic.Description
	p.Experience = experience.Description
	p.Goal = goal.Description
	return p, nil
}
