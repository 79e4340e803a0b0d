package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/torqsecure/sbomgen/common"
)

type Task struct {
	environment []string
	directory   string
	executable  string
	args        []string
	ctx         context.Context
}

func New(environment []string, directory string, task ...string) *Task {
	executable, args := task[0], task[1:]
	return &Task{
		environment: environment,
		directory:   directory,
		executable:  executable,
		args:        args,
		ctx:         context.Background(),
	}
}

func (it *Task) WithContext(ctx context.Context) *Task {
	it.ctx = ctx
	return it
}

func (it *Task) execute(stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	common.Timeline("exec %q started", it.executable)
	defer common.Timeline("exec %q done", it.executable)
	command := exec.CommandContext(it.ctx, it.executable, it.args...)
	command.Dir = it.directory
	command.Env = it.environment
	command.Stdin = stdin
	command.Stdout = stdout
	command.Stderr = stderr
	err := command.Start()
	if err != nil {
		return -500, err
	}
	common.Debug("PID #%d is %q.", command.Process.Pid, command)
	err = command.Wait()
	exit, ok := err.(*exec.ExitError)
	if ok {
		return exit.ExitCode(), err
	}
	if err != nil {
		return -500, err
	}
	return 0, nil
}

// Execute runs the task with output going to this process' stderr.
// Interactive mode additionally connects stdin to the child.
func (it *Task) Execute(interactive bool) (int, error) {
	var stdin io.Reader
	if interactive {
		stdin = os.Stdin
	}
	return it.execute(stdin, os.Stderr, os.Stderr)
}

// CaptureOutput runs the task and returns what it printed to stdout.
func (it *Task) CaptureOutput() (string, int, error) {
	stdout := bytes.Buffer{}
	code, err := it.execute(nil, &stdout, os.Stderr)
	return stdout.String(), code, err
}
