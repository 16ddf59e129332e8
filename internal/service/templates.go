package service

import (
	"context"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
	"gopkg.in/yaml.v3"
)

// Project templates and company info live only in the local cache.

func (s *Service) AddProjectTemplate(ctx context.Context, t domain.ProjectTemplate) (domain.ProjectTemplate, error) {
	if err := validateTemplate(t); err != nil {
		return domain.ProjectTemplate{}, s.fail("add project template", err, "name", t.Name)
	}
	t = t.Clone()
	t.ID = s.newID("template")
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{ProjectTemplates: store.Ref(append(st.ProjectTemplates, t))}
	})
	return t, nil
}

func (s *Service) UpdateProjectTemplate(ctx context.Context, t domain.ProjectTemplate) (domain.ProjectTemplate, error) {
	if err := validateTemplate(t); err != nil {
		return domain.ProjectTemplate{}, s.fail("update project template", err, "template_id", t.ID)
	}
	t = t.Clone()
	found := false
	s.state.Update(ctx, func(st store.State) store.Patch {
		if _, found = find(st.ProjectTemplates, t.ID); !found {
			return store.Patch{}
		}
		return store.Patch{ProjectTemplates: store.Ref(replace(st.ProjectTemplates, t))}
	})
	if !found {
		return domain.ProjectTemplate{}, s.fail("update project template", ErrTemplateNotFound, "template_id", t.ID)
	}
	return t, nil
}

func (s *Service) DeleteProjectTemplate(ctx context.Context, id string) error {
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{ProjectTemplates: store.Ref(without(st.ProjectTemplates, id))}
	})
	return nil
}

type templateFile struct {
	Templates []domain.ProjectTemplate `yaml:"templates"`
}

// ImportTemplates reads a YAML document with a top-level "templates" list.
// Entries whose id matches an existing template replace it; the others get
// a new id. Nothing is imported if any entry is invalid.
func (s *Service) ImportTemplates(ctx context.Context, r io.Reader) ([]domain.ProjectTemplate, error) {
	var f templateFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, s.fail("import project templates", fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err))
	}
	for i, t := range f.Templates {
		if err := validateTemplate(t); err != nil {
			return nil, s.fail("import project templates", err, "index", i)
		}
	}

	imported := make([]domain.ProjectTemplate, 0, len(f.Templates))
	s.state.Update(ctx, func(st store.State) store.Patch {
		templates := st.ProjectTemplates
		for _, t := range f.Templates {
			if _, ok := find(templates, t.ID); !ok || t.ID == "" {
				t.ID = s.newID("template")
			}
			templates = upsert(templates, t)
			imported = append(imported, t)
		}
		return store.Patch{ProjectTemplates: store.Ref(templates)}
	})
	s.logger.Info("project templates imported", "count", len(imported))
	return imported, nil
}

func (s *Service) UpdateCompanyInfo(ctx context.Context, info domain.CompanyInfo) domain.CompanyInfo {
	s.state.Dispatch(ctx, store.Patch{CompanyInfo: &info})
	return info
}
