package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/neuroflow/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent tomorrow", TypeAdd},
		{"breakdown clean the kitchen", TypeBreakdown},
		{"/organize too many tabs open in my head", TypeOrganize},
		{"/theme primary #ff8800", TypeTheme},
		{"/theme reset", TypeTheme},
		{"/energy low", TypeEnergy},
		{"/focus 45", TypeFocus},
		{"/survival", TypeSurvival},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/theme Card #fff")
	if err != nil {
		t.Fatalf("parse theme: %v", err)
	}
	if cmd.Theme.Field != model.ThemeCard || cmd.Theme.Color != "#fff" || cmd.Theme.Reset {
		t.Fatalf("unexpected theme args: %+v", cmd.Theme)
	}

	cmd, err = Parse("/energy HIGH")
	if err != nil || cmd.Energy.Mode != model.EnergyHigh {
		t.Fatalf("unexpected energy parse: %+v %v", cmd.Energy, err)
	}

	cmd, err = Parse("/focus 10m")
	if err != nil || cmd.Focus.Minutes != 10 {
		t.Fatalf("unexpected focus parse: %+v %v", cmd.Focus, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"/add   ",
		"/breakdown",
		"/theme primary blue",
		"/theme border #fff",
		"/energy turbo",
		"/focus 0",
		"/focus 500",
		"/focus soon",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	_, err = Parse(" / ")
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("/survival")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
