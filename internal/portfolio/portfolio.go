// Package portfolio loads a complete portfolio snapshot from a YAML file so the
// allocation engine can run without a database.
package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
)

const maxFileSize = 8 << 20

// Portfolio is the decoded file. Planning starts from planning.DefaultConfig
// and is overridden field by field by the file's planning section.
type Portfolio struct {
	Planning  planning.Config  `yaml:"planning"`
	Teams     []model.Team     `yaml:"teams"`
	Projects  []model.Project  `yaml:"projects"`
	Holidays  []model.Holiday  `yaml:"holidays"`
	Resources []model.Resource `yaml:"resources"`
	PTO       []model.PTOEntry `yaml:"pto"`
	Scenarios []model.Scenario `yaml:"scenarios"`
}

// LoadFile reads and validates the portfolio at path.
func LoadFile(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open portfolio: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a portfolio, assigns IDs to entries that have none and checks
// that every reference resolves.
func Load(r io.Reader) (*Portfolio, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("portfolio exceeds %d bytes", maxFileSize)
	}

	p := &Portfolio{Planning: planning.DefaultConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}

	p.Planning = p.Planning.WithDefaults()
	if err := p.Planning.Validate(); err != nil {
		return nil, err
	}
	p.assignIDs()
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Portfolio) assignIDs() {
	for i := range p.Teams {
		setID(&p.Teams[i].ID)
	}
	for i := range p.Projects {
		setID(&p.Projects[i].ID)
		if p.Projects[i].Status == "" {
			p.Projects[i].Status = model.StatusNotStarted
		}
	}
	for i := range p.Holidays {
		setID(&p.Holidays[i].ID)
	}
	for i := range p.Resources {
		setID(&p.Resources[i].ID)
	}
	for i := range p.PTO {
		setID(&p.PTO[i].ID)
	}
	for i := range p.Scenarios {
		setID(&p.Scenarios[i].ID)
	}
}

func setID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (p *Portfolio) validate() error {
	teams := make(map[string]bool, len(p.Teams))
	for i := range p.Teams {
		t := &p.Teams[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("team %q: %w", t.Name, err)
		}
		if teams[t.ID] {
			return fmt.Errorf("%w: duplicate team id %s", model.ErrValidation, t.ID)
		}
		teams[t.ID] = true
	}

	projects := make(map[string]bool, len(p.Projects))
	for i := range p.Projects {
		pr := &p.Projects[i]
		if err := pr.Validate(); err != nil {
			return fmt.Errorf("project %q: %w", pr.Name, err)
		}
		if projects[pr.ID] {
			return fmt.Errorf("%w: duplicate project id %s", model.ErrValidation, pr.ID)
		}
		projects[pr.ID] = true
		for _, e := range pr.Estimates {
			if !teams[e.TeamID] {
				return fmt.Errorf("project %q: %w: unknown team %s", pr.Name, model.ErrValidation, e.TeamID)
			}
		}
	}

	for i := range p.Holidays {
		h := &p.Holidays[i]
		if err := h.Validate(); err != nil {
			return fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		for _, id := range h.TeamIDs {
			if !teams[id] {
				return fmt.Errorf("holiday %q: %w: unknown team %s", h.Name, model.ErrValidation, id)
			}
		}
	}

	resources := make(map[string]bool, len(p.Resources))
	for i := range p.Resources {
		r := &p.Resources[i]
		if err := r.Validate(); err != nil {
			return fmt.Errorf("resource %q: %w", r.Name, err)
		}
		if !teams[r.TeamID] {
			return fmt.Errorf("resource %q: %w: unknown team %s", r.Name, model.ErrValidation, r.TeamID)
		}
		resources[r.ID] = true
	}

	for i := range p.PTO {
		e := &p.PTO[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("pto %d: %w", i, err)
		}
		if !resources[e.ResourceID] {
			return fmt.Errorf("pto %d: %w: unknown resource %s", i, model.ErrValidation, e.ResourceID)
		}
	}

	names := make(map[string]bool, len(p.Scenarios))
	for i := range p.Scenarios {
		s := &p.Scenarios[i]
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", model.ErrValidation, s.Name)
		}
		names[s.Name] = true
		for _, c := range s.Contractors {
			if !teams[c.TeamID] {
				return fmt.Errorf("scenario %q: %w: unknown team %s", s.Name, model.ErrValidation, c.TeamID)
			}
		}
		for _, o := range s.PriorityOverrides {
			if !projects[o.ProjectID] {
				return fmt.Errorf("scenario %q: %w: unknown project %s", s.Name, model.ErrValidation, o.ProjectID)
			}
		}
	}
	return nil
}

// Input returns the baseline engine input.
func (p *Portfolio) Input() planning.Input {
	return planning.Input{
		Teams:     p.Teams,
		Projects:  p.Projects,
		Holidays:  p.Holidays,
		Resources: p.Resources,
		PTO:       p.PTO,
	}
}

// Scenario looks a scenario up by name.
func (p *Portfolio) Scenario(name string) (*model.Scenario, bool) {
	for i := range p.Scenarios {
		if p.Scenarios[i].Name == name {
			return &p.Scenarios[i], true
		}
	}
	return nil, false
}
