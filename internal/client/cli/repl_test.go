package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = args
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Google(ctx context.Context) error {
	f.record("google")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Transcribe(ctx context.Context) error { f.record("transcribe"); return nil }
func (f *fakeExec) History(ctx context.Context, args []string) error {
	f.record("history", args...)
	return nil
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	f.record("show", args...)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.record("delete", args...)
	return nil
}
func (f *fakeExec) Plans(ctx context.Context) error { f.record("plans"); return nil }
func (f *fakeExec) Subscribe(ctx context.Context, args []string) error {
	f.record("subscribe", args...)
	return nil
}
func (f *fakeExec) Usage(ctx context.Context) error      { f.record("usage"); return nil }
func (f *fakeExec) CancelPlan(ctx context.Context) error { f.record("cancel"); return nil }
func (f *fakeExec) Account(ctx context.Context) error    { f.record("account"); return nil }
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.record("profile")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error { f.record("passwd"); return nil }
func (f *fakeExec) Admin(ctx context.Context, args []string) error {
	f.record("admin", args...)
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"transcribe",
		"history 2",
		"show 123",
		"usage",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "transcribe", "history", "show", "usage"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsArePassedThrough(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("admin role 7 admin\nquit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "admin" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	want := []string{"role", "7", "admin"}
	if len(exec.args) != len(want) {
		t.Fatalf("unexpected args: %v", exec.args)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Fatalf("unexpected args: %v", exec.args)
		}
	}
}

func TestRunREPL_BlankLinesAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n   \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ErrorsAreReportedNotFatal(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("usage\nplans\nexit\n")
	exec := &failingExec{fakeExec: fakeExec{loggedIn: true}}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	// usage failed, plans still ran
	if len(exec.calls) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	found := false
	for _, s := range printed {
		if s == "Error:" {
			found = true
		}
	}
	if !found {
		t.Fatalf("error was not reported: %v", printed)
	}
}

type failingExec struct {
	fakeExec
}

func (f *failingExec) Usage(ctx context.Context) error {
	f.record("usage")
	return context.DeadlineExceeded
}
