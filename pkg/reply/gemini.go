// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const (
	roleUser  = "user"
	roleModel = "model"
)

// Gemini asks a Gemini model to play the level's character.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini source authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Reply sends the newest player turn with the earlier turns as chat history.
func (g *Gemini) Reply(ctx context.Context, systemPrompt string, history []state.ChatTurn) (string, error) {
	instruction, contents := buildChat(systemPrompt, history)
	if len(contents) == 0 || contents[len(contents)-1].Role != roleUser {
		return "", errors.New("history does not end with a player turn")
	}
	last := contents[len(contents)-1]

	model := g.client.GenerativeModel(g.modelName)
	if instruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
	}

	chat := model.StartChat()
	chat.History = contents[:len(contents)-1]

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// buildChat maps turns to Gemini contents. Consecutive turns by the same
// author are merged into one content, and character turns that precede the
// first player turn are folded into the system instruction since a chat must
// open with a user message.
func buildChat(systemPrompt string, history []state.ChatTurn) (string, []*genai.Content) {
	instruction := strings.TrimSpace(systemPrompt)
	var contents []*genai.Content
	var opening []string

	for _, turn := range history {
		role := roleModel
		if turn.Role == state.RolePlayer {
			role = roleUser
		}
		if len(contents) == 0 && role == roleModel {
			opening = append(opening, turn.Text)
			continue
		}
		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.Text(turn.Text))
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	if len(opening) > 0 {
		said := "You opened the conversation by saying: " + strings.Join(opening, "\n")
		if instruction == "" {
			instruction = said
		} else {
			instruction += "\n\n" + said
		}
	}
	return instruction, contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
