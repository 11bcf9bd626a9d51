package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"taskflow-client/internal/collection"
	"taskflow-client/internal/confirm"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/edit"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/events"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/session"
)

const module = "shell"

var errQuit = errors.New("quit")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// Shell is the terminal presentation layer. It handles one event at a time:
// each line is a navigation or an action on the current screen.
type Shell struct {
	backend     Backend
	state       *session.State
	gate        *session.Gate
	publisher   events.IPublisher
	logger      logger.ILogger
	maxProjects int
	out         io.Writer

	path string

	// Dashboard screen.
	projects      *collection.ProjectCollection
	projectEdit   *edit.Session[entity.Project, *entity.Project]
	projectDelete *confirm.Deletion

	// Project screen.
	tasks      *collection.TaskCollection
	taskEdit   *edit.Session[entity.Task, *entity.Task]
	taskDelete *confirm.Deletion

	commands map[string]command
}

func NewShell(backend Backend, publisher events.IPublisher, l logger.ILogger, maxProjects int, out io.Writer) *Shell {
	state := session.NewState(backend, publisher, l)
	s := &Shell{
		backend:     backend,
		state:       state,
		gate:        session.NewGate(session.DefaultPolicy(), state, l),
		publisher:   publisher,
		logger:      l,
		maxProjects: maxProjects,
		out:         out,
		path:        "/",
	}
	s.commands = s.commandTable()
	return s
}

// Session exposes the read-only session handle.
func (s *Shell) Session() session.View {
	return s.state
}

func (s *Shell) Path() string {
	return s.path
}

func (s *Shell) commandTable() map[string]command {
	return map[string]command{
		"help":    {usage: "help", help: "Show commands", run: s.cmdHelp},
		"signup":  {usage: "signup <name> | <email> | <country> | <password>", help: "Create an account", run: s.cmdSignup},
		"login":   {usage: "login <email> <password>", help: "Sign in", run: s.cmdLogin},
		"logout":  {usage: "logout", help: "Sign out", run: s.cmdLogout},
		"go":      {usage: "go <path>", help: "Navigate to a path", run: s.cmdGo},
		"home":    {usage: "home", help: "Go to the dashboard", run: s.route("/dashboard")},
		"profile": {usage: "profile", help: "Show the signed-in user", run: s.route("/profile")},
		"new":     {usage: "new", help: "Open the create-project screen", run: s.route("/create-project")},
		"open":    {usage: "open <project-id>", help: "Open a project", run: s.cmdOpen},
		"refresh": {usage: "refresh", help: "Reload the current screen", run: s.cmdRefresh},
		"create":  {usage: "create <title> | <description> [| <status>]", help: "Create a project or task", run: s.cmdCreate},
		"delete":  {usage: "delete <id>", help: "Ask to delete an item", run: s.cmdDelete},
		"confirm": {usage: "confirm", help: "Confirm the pending delete", run: s.cmdConfirm},
		"cancel":  {usage: "cancel", help: "Cancel the pending delete", run: s.cmdCancel},
		"edit":    {usage: "edit <id>", help: "Start editing an item", run: s.cmdEdit},
		"set":     {usage: "set <field> <value>", help: "Change a field of the draft", run: s.cmdSet},
		"save":    {usage: "save", help: "Save the draft", run: s.cmdSave},
		"discard": {usage: "discard", help: "Throw the draft away", run: s.cmdDiscard},
		"status":  {usage: "status <task-id> <status>", help: "Set a task's status", run: s.cmdStatus},
		"quit":    {usage: "quit", help: "Leave the shell", run: s.cmdQuit},
		"exit":    {usage: "exit", help: "Leave the shell", run: s.cmdQuit},
	}
}

// Run reads commands from in until EOF or quit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	headColor.Fprintln(s.out, "taskflow shell. Type `help` for commands.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.out, "%s> ", s.path)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := s.Execute(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Execute handles one line. Command failures are printed, never returned;
// only quit ends the loop.
func (s *Shell) Execute(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	cmd, ok := s.commands[strings.ToLower(args[0])]
	if !ok {
		errColor.Fprintf(s.out, "Unknown command %q. Type `help`.\n", args[0])
		return nil
	}

	if err := cmd.run(ctx, args[1:]); err != nil {
		if errors.Is(err, errQuit) {
			return err
		}
		s.logger.Debug(module, "Command failed", map[string]interface{}{"command": args[0], "error": err.Error()})
		renderError(s.out, err)
	}
	return nil
}

func (s *Shell) cmdHelp(ctx context.Context, args []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-48s %s\n", c.usage, c.help)
	}
	return nil
}

func (s *Shell) cmdQuit(ctx context.Context, args []string) error {
	return errQuit
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}

func (s *Shell) cmdSignup(ctx context.Context, args []string) error {
	parts := splitSegments(args)
	if len(parts) != 4 {
		return usageError(s.commands["signup"].usage)
	}
	req := dto.SignupRequest{Name: parts[0], Email: parts[1], Country: parts[2], Password: parts[3]}
	if err := s.state.Signup(ctx, req); err != nil {
		return err
	}
	okColor.Fprintln(s.out, "Account created. Log in with `login <email> <password>`.")
	return s.navigate(ctx, "/login")
}

func (s *Shell) cmdLogin(ctx context.Context, args []string) error {
	req := dto.LoginRequest{}
	if len(args) > 0 {
		req.Email = args[0]
	}
	if len(args) > 1 {
		req.Password = strings.Join(args[1:], " ")
	}

	user, err := s.state.Login(ctx, req)
	if err != nil {
		return err
	}
	okColor.Fprintf(s.out, "Welcome, %s.\n", user.Name)
	return s.navigate(ctx, "/dashboard")
}

func (s *Shell) cmdLogout(ctx context.Context, args []string) error {
	s.state.Logout(ctx)
	s.leave()
	s.path = "/login"
	okColor.Fprintln(s.out, "Signed out.")
	return nil
}

func (s *Shell) cmdGo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(s.commands["go"].usage)
	}
	return s.navigate(ctx, args[0])
}

func (s *Shell) route(path string) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		return s.navigate(ctx, path)
	}
}

func (s *Shell) cmdOpen(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(s.commands["open"].usage)
	}
	return s.navigate(ctx, "/project/"+args[0])
}

func (s *Shell) cmdRefresh(ctx context.Context, args []string) error {
	return s.navigate(ctx, s.path)
}
