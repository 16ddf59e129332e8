package domain

import "slices"

func (p Project) Clone() Project {
	p.ParticipantIDs = slices.Clone(p.ParticipantIDs)
	return p
}

func (t Task) Clone() Task {
	t.Comments = slices.Clone(t.Comments)
	t.Attachments = slices.Clone(t.Attachments)
	t.Checklist = slices.Clone(t.Checklist)
	return t
}

func (r Role) Clone() Role {
	r.Permissions = slices.Clone(r.Permissions)
	return r
}

func (l Lead) Clone() Lead {
	l.Comments = slices.Clone(l.Comments)
	l.Attachments = slices.Clone(l.Attachments)
	return l
}

func (t ProjectTemplate) Clone() ProjectTemplate {
	t.Tasks = slices.Clone(t.Tasks)
	return t
}

// UniqueIDs returns ids with duplicates and empty entries removed, keeping first occurrence order.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RecordID methods let collection helpers address any record by id.

func (p Project) RecordID() string     { return p.ID }
func (t Task) RecordID() string        { return t.ID }
func (p Participant) RecordID() string { return p.ID }
func (r Role) RecordID() string        { return r.ID }
func (c Client) RecordID() string      { return c.ID }
func (l Lead) RecordID() string        { return l.ID }
func (w Workspace) RecordID() string   { return w.ID }

func (t ProjectTemplate) RecordID() string { return t.ID }
