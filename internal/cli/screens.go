package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/collection"
	"taskflow-client/internal/confirm"
	"taskflow-client/internal/edit"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/session"
)

type screen string

const (
	screenLanding       screen = "landing"
	screenLogin         screen = "login"
	screenSignup        screen = "signup"
	screenDashboard     screen = "dashboard"
	screenCreateProject screen = "create-project"
	screenProject       screen = "project"
	screenProfile       screen = "profile"
	screenNotFound      screen = "not-found"
)

// screenOf maps a normalized path to its screen and route parameter.
func screenOf(path string) (screen, string) {
	switch path {
	case "/":
		return screenLanding, ""
	case "/login":
		return screenLogin, ""
	case "/signup":
		return screenSignup, ""
	case "/dashboard":
		return screenDashboard, ""
	case "/create-project":
		return screenCreateProject, ""
	case "/profile":
		return screenProfile, ""
	}
	if id, ok := strings.CutPrefix(path, "/project/"); ok && id != "" && !strings.Contains(id, "/") {
		return screenProject, id
	}
	return screenNotFound, ""
}

func (s *Shell) screen() (screen, string) {
	return screenOf(s.path)
}

// navigate runs path through the verification gate and shows the screen it
// lands on. A denied navigation ends on the login screen.
func (s *Shell) navigate(ctx context.Context, path string) error {
	res := s.gate.Navigate(ctx, path)

	switch res.Access {
	case session.AccessSuperseded:
		s.logger.Debug(module, "Navigation superseded", map[string]interface{}{"path": res.Path})
		return nil
	case session.AccessDenied:
		s.leave()
		s.path = "/login"
		if res.Err != nil && apperror.KindOf(res.Err) == apperror.KindNetwork {
			renderError(s.out, res.Err)
		}
		warnColor.Fprintln(s.out, "Please log in to continue: login <email> <password>")
		return nil
	}

	if res.Path != s.path {
		s.leave()
		s.path = res.Path
	}
	return s.show(ctx)
}

// leave tears down everything the current screen owns. Requests still in
// flight for it finish against closed collections and are dropped.
func (s *Shell) leave() {
	if s.projects != nil {
		s.projects.Close()
	}
	if s.tasks != nil {
		s.tasks.Close()
	}
	if s.projectEdit != nil {
		s.projectEdit.Discard()
	}
	if s.taskEdit != nil {
		s.taskEdit.Discard()
	}
	if s.projectDelete != nil {
		s.projectDelete.Cancel()
	}
	if s.taskDelete != nil {
		s.taskDelete.Cancel()
	}
	s.projects, s.projectEdit, s.projectDelete = nil, nil, nil
	s.tasks, s.taskEdit, s.taskDelete = nil, nil, nil
}

func (s *Shell) show(ctx context.Context) error {
	scr, param := s.screen()

	switch scr {
	case screenLanding:
		headColor.Fprintln(s.out, "TaskFlow")
		fmt.Fprintln(s.out, "  Organize projects and the tasks inside them.")
		dimColor.Fprintln(s.out, "  login <email> <password> | go /signup")
	case screenLogin:
		headColor.Fprintln(s.out, "Log in")
		dimColor.Fprintln(s.out, "  login <email> <password>")
	case screenSignup:
		headColor.Fprintln(s.out, "Sign up")
		dimColor.Fprintln(s.out, "  signup <name> | <email> | <country> | <password>")
	case screenProfile:
		snap := s.state.Snapshot()
		if snap.User == nil {
			return errors.New("not signed in")
		}
		renderProfile(s.out, snap.User)
	case screenDashboard:
		if err := s.loadProjects(ctx); err != nil {
			return err
		}
		s.renderDashboard()
	case screenCreateProject:
		if err := s.loadProjects(ctx); err != nil {
			return err
		}
		capacity := s.projects.Capacity()
		headColor.Fprintln(s.out, "New project")
		fmt.Fprintf(s.out, "  %d of %d projects used\n", capacity.Used, capacity.Limit)
		if !s.projects.CanCreate() {
			warnColor.Fprintf(s.out, "  Project limit reached. Delete a project before creating another.\n")
			return nil
		}
		dimColor.Fprintln(s.out, "  create <title> | <description>")
	case screenProject:
		if err := s.loadTasks(ctx, param); err != nil {
			return err
		}
		s.renderProject()
	default:
		errColor.Fprintf(s.out, "Page not found: %s\n", s.path)
	}
	return nil
}

func (s *Shell) loadProjects(ctx context.Context) error {
	if s.projects == nil {
		s.projects = collection.NewProjectCollection(
			s.backend.ProjectStore(),
			s.maxProjects,
			collection.WithLogger(s.logger),
			collection.WithPublisher(s.publisher),
		)
		s.projectEdit = edit.NewSession[entity.Project](s.projects, s.logger)
		s.projectDelete = confirm.NewDeletion(s.projects, s.logger)
	}
	_, err := s.projects.Load(ctx)
	return err
}

func (s *Shell) loadTasks(ctx context.Context, projectId string) error {
	if s.tasks == nil || s.tasks.ProjectId() != projectId {
		s.tasks = collection.NewTaskCollection(
			s.backend.TaskStore(projectId),
			collection.WithLogger(s.logger),
			collection.WithPublisher(s.publisher),
		)
		s.taskEdit = edit.NewSession[entity.Task](s.tasks, s.logger)
		s.taskDelete = confirm.NewDeletion(s.tasks, s.logger)
	}
	_, err := s.tasks.Load(ctx)
	return err
}

func (s *Shell) renderDashboard() {
	renderProjects(s.out, s.projects.Items(), s.projects.Capacity(), s.projectDelete.IsPending)
}

func (s *Shell) renderProject() {
	title := "Project " + s.tasks.ProjectId()
	renderTasks(s.out, title, s.tasks.Items(), s.tasks.Stats(), s.taskDelete.IsPending)
}

func (s *Shell) renderCurrent() {
	switch scr, _ := s.screen(); scr {
	case screenDashboard:
		s.renderDashboard()
	case screenProject:
		s.renderProject()
	}
}
