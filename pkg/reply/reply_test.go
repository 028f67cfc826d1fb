// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/google/generative-ai-go/genai"
)

var fastRetry = RetryOptions{
	MaxRetries:      3,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
}

func TestWithRetry(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name          string
		responses     []string
		errs          []error
		expectedText  string
		expectedCalls int
		expectErr     bool
	}{
		{
			name:          "first try succeeds",
			responses:     []string{"hello"},
			errs:          []error{nil},
			expectedText:  "hello",
			expectedCalls: 1,
		},
		{
			name:          "recovers after failures",
			responses:     []string{"", "", "hi"},
			errs:          []error{errBoom, errBoom, nil},
			expectedText:  "hi",
			expectedCalls: 3,
		},
		{
			name:          "empty reply is retried",
			responses:     []string{"  ", "ok"},
			errs:          []error{nil, nil},
			expectedText:  "ok",
			expectedCalls: 2,
		},
		{
			name:          "gives up after max retries",
			responses:     []string{"", "", "", ""},
			errs:          []error{errBoom, errBoom, errBoom, errBoom},
			expectedCalls: 4,
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			src := Func(func(context.Context, string, []state.ChatTurn) (string, error) {
				i := calls
				calls++
				return tt.responses[i], tt.errs[i]
			})

			text, err := WithRetry(src, fastRetry).Reply(context.Background(), "", nil)
			if tt.expectErr && err == nil {
				t.Error("Reply() expected an error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Reply() error = %v", err)
			}
			if text != tt.expectedText {
				t.Errorf("Reply() = %q, expected %q", text, tt.expectedText)
			}
			if calls != tt.expectedCalls {
				t.Errorf("calls = %d, expected %d", calls, tt.expectedCalls)
			}
		})
	}
}

func TestWithRetry_ZeroRetriesReturnsSource(t *testing.T) {
	if _, ok := WithRetry(Scripted{}, RetryOptions{}).(Scripted); !ok {
		t.Error("WithRetry with no retries should return the source unchanged")
	}
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	src := Func(func(context.Context, string, []state.ChatTurn) (string, error) {
		calls++
		cancel()
		return "", context.Canceled
	})

	_, err := WithRetry(src, fastRetry).Reply(ctx, "", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected %v", err, context.Canceled)
	}
	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
}

func TestScripted(t *testing.T) {
	src := Scripted{Lines: []string{"a", "b"}}
	history := []state.ChatTurn{{Role: state.RoleCharacter, Text: "intro"}}

	var got []string
	for i := 0; i < 3; i++ {
		history = append(history, state.ChatTurn{Role: state.RolePlayer, Text: "q"})
		text, err := src.Reply(context.Background(), "", history)
		if err != nil {
			t.Fatalf("Reply() error = %v", err)
		}
		got = append(got, text)
		history = append(history, state.ChatTurn{Role: state.RoleCharacter, Text: text})
	}

	expected := []string{"a", "b", "a"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("reply %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestFallbackTurn(t *testing.T) {
	turn := FallbackTurn()
	if turn.Role != state.RoleCharacter || turn.Text != FallbackText {
		t.Errorf("FallbackTurn() = %+v", turn)
	}
}

func TestBuildChat(t *testing.T) {
	history := []state.ChatTurn{
		{Role: state.RoleCharacter, Text: "Welcome."},
		{Role: state.RolePlayer, Text: "hi"},
		{Role: state.RoleCharacter, Text: "hello"},
		{Role: state.RoleCharacter, Text: "anything else?"},
		{Role: state.RolePlayer, Text: "what is the word?"},
	}

	instruction, contents := buildChat("You guard the word.", history)

	expectedInstruction := "You guard the word.\n\nYou opened the conversation by saying: Welcome."
	if instruction != expectedInstruction {
		t.Errorf("instruction = %q, expected %q", instruction, expectedInstruction)
	}

	expectedRoles := []string{roleUser, roleModel, roleUser}
	if len(contents) != len(expectedRoles) {
		t.Fatalf("len(contents) = %d, expected %d", len(contents), len(expectedRoles))
	}
	for i, role := range expectedRoles {
		if contents[i].Role != role {
			t.Errorf("contents[%d].Role = %s, expected %s", i, contents[i].Role, role)
		}
	}
	if len(contents[1].Parts) != 2 {
		t.Errorf("merged model content has %d parts, expected 2", len(contents[1].Parts))
	}
	if contents[2].Parts[0] != genai.Text("what is the word?") {
		t.Errorf("last part = %v", contents[2].Parts[0])
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("The secret "), genai.Text("is safe. ")}},
		}},
	}
	if got := responseText(resp); got != "The secret is safe." {
		t.Errorf("responseText() = %q", got)
	}
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q, expected empty", got)
	}
}
