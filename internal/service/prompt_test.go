package service

import (
	"strings"
	"testing"

	"ai-character-chat/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func testCharacter() *models.Character {
	return &models.Character{
		ID:           "char-1",
		Name:         "Luna",
		Description:  "A mystical sorceress living in an enchanted forest.",
		Personality:  "wise, mysterious",
		SystemPrompt: "Speak with wisdom and mystery, often using metaphors related to nature and magic.",
	}
}

func TestBuildSystemPrompt_IdentityBlock(t *testing.T) {
	prompt := BuildSystemPrompt(testCharacter(), models.ModeCasual, false, false, nil)

	assert.True(t, strings.HasPrefix(prompt, "You are Luna."))
	assert.Contains(t, prompt, "A mystical sorceress living in an enchanted forest.")
	assert.Contains(t, prompt, "Personality: wise, mysterious")
	assert.Contains(t, prompt, "metaphors related to nature and magic")
}

func TestBuildSystemPrompt_ModeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		contains string
	}{
		{"casual mode", models.ModeCasual, "casual conversation"},
		{"rp mode", models.ModeRP, "roleplay"},
		{"rpg mode", models.ModeRPG, "RPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildSystemPrompt(testCharacter(), tt.mode, false, false, nil)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestBuildSystemPrompt_UnknownModeDegradesSilently(t *testing.T) {
	base := BuildSystemPrompt(testCharacter(), "", false, false, nil)
	unknown := BuildSystemPrompt(testCharacter(), "poetry-slam", false, false, nil)

	assert.Equal(t, base, unknown)
	assert.NotContains(t, unknown, "Interaction mode")
}

func TestBuildSystemPrompt_Notices(t *testing.T) {
	prompt := BuildSystemPrompt(testCharacter(), models.ModeCasual, true, true, nil)

	assert.Contains(t, prompt, "NSFW")
	assert.Contains(t, prompt, "multiplayer room")

	clean := BuildSystemPrompt(testCharacter(), models.ModeCasual, false, false, nil)
	assert.NotContains(t, clean, "NSFW")
	assert.NotContains(t, clean, "multiplayer room")
}

func TestBuildSystemPrompt_PersonaBlock(t *testing.T) {
	persona := &models.Persona{
		Name:        "Shadow",
		Description: "A wandering rogue.",
		Traits:      "sarcastic, loyal",
	}

	prompt := BuildSystemPrompt(testCharacter(), models.ModeRP, false, false, persona)

	assert.Contains(t, prompt, "presents as Shadow")
	assert.Contains(t, prompt, "A wandering rogue.")
	assert.Contains(t, prompt, "Traits: sarcastic, loyal")

	// Persona block comes after the character identity.
	assert.Greater(t, strings.Index(prompt, "Shadow"), strings.Index(prompt, "Luna"))
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	a := BuildSystemPrompt(testCharacter(), models.ModeRPG, true, false, nil)
	b := BuildSystemPrompt(testCharacter(), models.ModeRPG, true, false, nil)
	assert.Equal(t, a, b)
}
