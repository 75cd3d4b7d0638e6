package arith

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessagesIncludeCodeFrame(t *testing.T) {
	_, err := Evaluate("1 # 2")
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"lexical error at 1:3: unexpected character '#'",
		"  --> line 1, column 3",
		" 1 | 1 # 2",
		"   |   ^",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in:\n%s", want, msg)
		}
	}
	if got := Message(err); got != "lexical error at 1:3: unexpected character '#'" {
		t.Fatalf("unexpected bare message %q", got)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("(1 + 2")
	if got := Message(err); got != `parse error at 1:7: expected ")", got end of input` {
		t.Fatalf("unexpected message %q", got)
	}
	_, err = Parse("1 + + 2")
	if got := Message(err); got != `parse error at 1:5: expected integer or "(", got "+"` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestKindSeesThroughWrapping(t *testing.T) {
	_, err := Evaluate("4 / 0")
	wrapped := fmt.Errorf("line 3: %w", err)
	if Kind(wrapped) != KindDivisionByZero {
		t.Fatalf("expected division by zero kind, got %s", Kind(wrapped))
	}
	pos, ok := ErrorPos(wrapped)
	if !ok || pos.Column != 3 {
		t.Fatalf("unexpected position %+v (%v)", pos, ok)
	}
	if Kind(nil) != KindUnknown || Kind(errors.New("other")) != KindUnknown {
		t.Fatalf("unexpected kind for foreign errors")
	}
	if _, ok := ErrorPos(errors.New("other")); ok {
		t.Fatalf("foreign errors have no position")
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := map[string]ErrorKind{
		"1 $ 2":     KindLexical,
		"1 +":       KindParse,
		"1 / (1-1)": KindDivisionByZero,
	}
	seen := map[ErrorKind]bool{}
	for input, want := range kinds {
		_, err := Evaluate(input)
		if got := Kind(err); got != want {
			t.Fatalf("evaluate %q: kind %s, want %s", input, got, want)
		}
		seen[want] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected three distinct kinds, got %v", seen)
	}
	names := []string{KindLexical.String(), KindParse.String(), KindDivisionByZero.String()}
	if strings.Join(names, ",") != "LexicalError,ParseError,DivisionByZeroError" {
		t.Fatalf("unexpected kind names %v", names)
	}
}

func TestFormatCodeFrameClampsColumn(t *testing.T) {
	frame := formatCodeFrame("ab", Position{Line: 1, Column: 10})
	if !strings.HasSuffix(frame, "  ^") {
		t.Fatalf("caret not clamped:\n%s", frame)
	}
	if formatCodeFrame("ab", Position{Line: 3, Column: 1}) != "" {
		t.Fatalf("expected empty frame for out of range line")
	}
	if formatCodeFrame("", Position{Line: 1, Column: 1}) != "" {
		t.Fatalf("expected empty frame for empty source")
	}
}

func TestLexicalErrorDistinguishesBadEncodingFromReplacementChar(t *testing.T) {
	_, err := Evaluate("1 \uFFFD 2")
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexicalError, got %v", err)
	}
	if lexErr.InvalidEncoding {
		t.Fatalf("valid U+FFFD flagged as invalid encoding")
	}
	if got := lexErr.Message(); got != "lexical error at 1:3: unexpected character '\uFFFD'" {
		t.Fatalf("unexpected message %q", got)
	}

	_, err = Evaluate("1 \xff 2")
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexicalError, got %v", err)
	}
	if !lexErr.InvalidEncoding {
		t.Fatalf("invalid byte not flagged")
	}
	if got := lexErr.Message(); got != "lexical error at 1:3: invalid UTF-8 encoding" {
		t.Fatalf("unexpected message %q", got)
	}
}
