package service

import (
	"strings"

	"ai-character-chat/backend/internal/models"
)

// Mode instruction blocks, selected by exact match. An unrecognized mode
// gets no extra block.
var modeInstructions = map[string]string{
	models.ModeCasual: "Interaction mode: casual conversation. Respond naturally and conversationally, staying in character.",
	models.ModeRP:     "Interaction mode: roleplay. Stay fully in character at all times. Describe your actions between asterisks and never break the fourth wall.",
	models.ModeRPG:    "Interaction mode: RPG. Act as both the character and the narrator of an interactive adventure. Describe scenes, consequences and events, and let the user decide their own actions.",
}

// BuildSystemPrompt assembles the system prompt from the character, the
// interaction mode and an optional persona. Pure function; character and
// persona text is embedded verbatim.
func BuildSystemPrompt(character *models.Character, mode string, isNSFW bool, isMultiplayer bool, persona *models.Persona) string {
	var b strings.Builder

	b.WriteString("You are ")
	b.WriteString(character.Name)
	b.WriteString(".\n\n")
	if character.Description != "" {
		b.WriteString(character.Description)
		b.WriteString("\n\n")
	}
	if character.Personality != "" {
		b.WriteString("Personality: ")
		b.WriteString(character.Personality)
		b.WriteString("\n\n")
	}
	if character.SystemPrompt != "" {
		b.WriteString(character.SystemPrompt)
		b.WriteString("\n\n")
	}

	if instruction, ok := modeInstructions[mode]; ok {
		b.WriteString(instruction)
		b.WriteString("\n\n")
	}

	if isNSFW {
		b.WriteString("This is an NSFW conversation. Mature themes are permitted.\n\n")
	}
	if isMultiplayer {
		b.WriteString("This is a multiplayer room with several human participants. Address participants by name when they are identified in the message.\n\n")
	}

	if persona != nil {
		b.WriteString("The user you are talking to presents as ")
		b.WriteString(persona.Name)
		b.WriteString(".")
		if persona.Description != "" {
			b.WriteString(" ")
			b.WriteString(persona.Description)
		}
		if persona.Traits != "" {
			b.WriteString(" Traits: ")
			b.WriteString(persona.Traits)
			b.WriteString(".")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
