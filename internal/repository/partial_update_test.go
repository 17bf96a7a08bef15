package repository

import (
	"errors"
	"testing"
)

func TestBuildPartialUpdate(t *testing.T) {
	fields := (&UpdateFields{}).
		Set("firstName", "Aliya").
		Set("age", 32)

	setClause, args, err := BuildPartialUpdate(fields, map[string]string{"firstName": "first_name"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if want := `"first_name"=$1, "age"=$2`; setClause != want {
		t.Fatalf("set clause %q, want %q", setClause, want)
	}
	if len(args) != 2 || args[0] != "Aliya" || args[1] != 32 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildPartialUpdate_Empty(t *testing.T) {
	for _, fields := range []*UpdateFields{nil, {}} {
		_, _, err := BuildPartialUpdate(fields, nil)
		if !errors.Is(err, ErrNoUpdateFields) {
			t.Fatalf("expected ErrNoUpdateFields, got %v", err)
		}
	}
}

func TestBuildPartialUpdate_PreservesOrder(t *testing.T) {
	fields := (&UpdateFields{}).
		Set("title", "a").
		Set("salary", int64(1)).
		Set("equity", "0.1")

	setClause, args, err := BuildPartialUpdate(fields, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if want := `"title"=$1, "salary"=$2, "equity"=$3`; setClause != want {
		t.Fatalf("set clause %q, want %q", setClause, want)
	}
	if args[0] != "a" || args[1] != int64(1) || args[2] != "0.1" {
		t.Fatalf("args out of order: %v", args)
	}
}

func TestBuildPartialUpdate_UnmappedNamePassesThrough(t *testing.T) {
	fields := (&UpdateFields{}).Set("email", "a@b.c")
	setClause, _, err := BuildPartialUpdate(fields, map[string]string{"firstName": "first_name"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if want := `"email"=$1`; setClause != want {
		t.Fatalf("set clause %q, want %q", setClause, want)
	}
}

func TestUpdateFields_ValueAndReplace(t *testing.T) {
	fields := (&UpdateFields{}).Set("password", "plain")

	v, ok := fields.Value("password")
	if !ok || v != "plain" {
		t.Fatalf("value: %v %v", v, ok)
	}
	if !fields.Replace("password", "hashed") {
		t.Fatal("replace reported missing field")
	}
	v, _ = fields.Value("password")
	if v != "hashed" {
		t.Fatalf("value after replace: %v", v)
	}
	if fields.Replace("missing", "x") {
		t.Fatal("replace invented a field")
	}
}
