package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/confirm"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
)

var errNothingHere = errors.New("that action is not available on this screen")

func (s *Shell) cmdCreate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError(s.commands["create"].usage)
	}
	parts := splitSegments(args)
	description := ""
	if len(parts) > 1 {
		description = parts[1]
	}

	switch scr, _ := s.screen(); scr {
	case screenDashboard, screenCreateProject:
		if s.projects == nil {
			return errNothingHere
		}
		project, err := s.projects.Create(ctx, dto.CreateProjectRequest{Title: parts[0], Description: description})
		if err != nil {
			return err
		}
		okColor.Fprintf(s.out, "Created project %s (%s)\n", project.Title, project.Id)
		if scr == screenCreateProject {
			return s.navigate(ctx, "/dashboard")
		}
		s.renderDashboard()
		return nil

	case screenProject:
		if s.tasks == nil {
			return errNothingHere
		}
		draft := dto.TaskDraft{Title: parts[0], Description: description}
		if len(parts) > 2 {
			status, ok := entity.ParseTaskStatus(parts[2])
			if !ok {
				return apperror.Validation(apperror.FieldError{Field: "status", Message: "must be Pending, In Progress or Completed"})
			}
			draft.Status = status
		}
		task, err := s.tasks.Create(ctx, draft)
		if err != nil {
			return err
		}
		okColor.Fprintf(s.out, "Created task %s (%s)\n", task.Title, task.Id)
		s.renderProject()
		return nil
	}
	return errNothingHere
}

// deletion returns the confirmable deletion of the current screen.
func (s *Shell) deletion() (*confirm.Deletion, func(id string) bool) {
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		if s.projects != nil {
			return s.projectDelete, func(id string) bool { _, ok := s.projects.Find(id); return ok }
		}
	case screenProject:
		if s.tasks != nil {
			return s.taskDelete, func(id string) bool { _, ok := s.tasks.Find(id); return ok }
		}
	}
	return nil, nil
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(s.commands["delete"].usage)
	}
	del, exists := s.deletion()
	if del == nil {
		return errNothingHere
	}
	if !exists(args[0]) {
		return apperror.New(apperror.KindDelete, "Item not found: "+args[0])
	}

	del.RequestDelete(args[0])
	warnColor.Fprintf(s.out, "Delete %s? This cannot be undone. Type `confirm` or `cancel`.\n", args[0])
	return nil
}

func (s *Shell) cmdConfirm(ctx context.Context, args []string) error {
	del, _ := s.deletion()
	if del == nil {
		return errNothingHere
	}
	id, _ := del.Target()
	done, err := del.Confirm(ctx)
	if !done {
		dimColor.Fprintln(s.out, "Nothing to confirm.")
		return nil
	}
	if err != nil {
		return err
	}
	okColor.Fprintf(s.out, "Deleted %s\n", id)
	s.renderCurrent()
	return nil
}

func (s *Shell) cmdCancel(ctx context.Context, args []string) error {
	del, _ := s.deletion()
	if del == nil {
		return errNothingHere
	}
	del.Cancel()
	dimColor.Fprintln(s.out, "Deletion cancelled.")
	return nil
}

func (s *Shell) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(s.commands["edit"].usage)
	}
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		if s.projectEdit != nil {
			if err := s.projectEdit.OpenById(args[0]); err != nil {
				return err
			}
			return s.showDraft()
		}
	case screenProject:
		if s.taskEdit != nil {
			if err := s.taskEdit.OpenById(args[0]); err != nil {
				return err
			}
			return s.showDraft()
		}
	}
	return errNothingHere
}

func (s *Shell) cmdSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError(s.commands["set"].usage)
	}
	field, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		if s.projectEdit != nil {
			if err := s.projectEdit.MutateField(field, value); err != nil {
				return err
			}
			return s.showDraft()
		}
	case screenProject:
		if s.taskEdit != nil {
			if err := s.taskEdit.MutateField(field, value); err != nil {
				return err
			}
			return s.showDraft()
		}
	}
	return errNothingHere
}

func (s *Shell) cmdSave(ctx context.Context, args []string) error {
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		if s.projectEdit != nil {
			saved, err := s.projectEdit.Save(ctx)
			if err != nil {
				return err
			}
			okColor.Fprintf(s.out, "Saved project %s\n", saved.Title)
			s.renderDashboard()
			return nil
		}
	case screenProject:
		if s.taskEdit != nil {
			saved, err := s.taskEdit.Save(ctx)
			if err != nil {
				return err
			}
			okColor.Fprintf(s.out, "Saved task %s\n", saved.Title)
			s.renderProject()
			return nil
		}
	}
	return errNothingHere
}

func (s *Shell) cmdDiscard(ctx context.Context, args []string) error {
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		if s.projectEdit != nil {
			s.projectEdit.Discard()
			dimColor.Fprintln(s.out, "Changes discarded.")
			return nil
		}
	case screenProject:
		if s.taskEdit != nil {
			s.taskEdit.Discard()
			dimColor.Fprintln(s.out, "Changes discarded.")
			return nil
		}
	}
	return errNothingHere
}

// cmdStatus changes one task's status straight through the collection,
// without opening an edit session.
func (s *Shell) cmdStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError(s.commands["status"].usage)
	}
	if scr, _ := s.screen(); scr != screenProject || s.tasks == nil {
		return errNothingHere
	}

	task, ok := s.tasks.Find(args[0])
	if !ok {
		return apperror.New(apperror.KindUpdate, "Item not found: "+args[0])
	}
	if err := task.SetField("status", strings.Join(args[1:], " ")); err != nil {
		return err
	}
	updated, err := s.tasks.Update(ctx, task.Id, task)
	if err != nil {
		return err
	}
	okColor.Fprintf(s.out, "%s is now %s\n", updated.Title, updated.Status)
	s.renderProject()
	return nil
}

func (s *Shell) showDraft() error {
	fields := map[string]string{}
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		p, ok := s.projectEdit.Draft()
		if !ok {
			return nil
		}
		headColor.Fprintf(s.out, "Editing project %s\n", p.Id)
		fields["title"], fields["description"] = p.Title, p.Description
	case screenProject:
		t, ok := s.taskEdit.Draft()
		if !ok {
			return nil
		}
		headColor.Fprintf(s.out, "Editing task %s\n", t.Id)
		fields["title"], fields["description"], fields["status"] = t.Title, t.Description, fmt.Sprint(t.Status)
	}
	renderDraft(s.out, fields)
	return nil
}
