package core

import (
	"strings"
	"time"
)

// FactCategory classifies a long-term fact. Summarizer output tagged with
// anything outside this set is dropped per candidate.
type FactCategory string

const (
	// FactPreference captures likes/dislikes ("prefers oak wood").
	FactPreference FactCategory = "preference"
	// FactBuildingProject captures ongoing construction work.
	FactBuildingProject FactCategory = "building_project"
	// FactPersonalityNote captures observed play style and temperament.
	FactPersonalityNote FactCategory = "personality_note"
	// FactAchievement captures notable accomplishments.
	FactAchievement FactCategory = "achievement"
)

// FactCategories returns all valid categories in stable order.
func FactCategories() []FactCategory {
	return []FactCategory{FactPreference, FactBuildingProject, FactPersonalityNote, FactAchievement}
}

// Valid reports whether c is one of the fixed fact categories.
func (c FactCategory) Valid() bool {
	switch c {
	case FactPreference, FactBuildingProject, FactPersonalityNote, FactAchievement:
		return true
	}
	return false
}

// Fact is a durable, categorized piece of knowledge about a player derived
// from past events. Facts are append-only conceptually; the fact store
// deduplicates them by (category, normalized text) with existing facts
// winning over later candidates.
type Fact struct {
	Player    string       `json:"player"`
	Category  FactCategory `json:"category"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewFact creates a fact stamped with a UTC creation time.
func NewFact(player string, category FactCategory, text string) Fact {
	return Fact{Player: player, Category: category, Text: text, CreatedAt: time.Now().UTC()}
}

// Key returns the dedup identity of the fact: category plus normalized text.
// Two facts for the same player with equal keys are the same fact.
func (f Fact) Key() string {
	return string(f.Category) + "|" + NormalizeText(f.Text)
}

// NormalizeText folds case and collapses all whitespace runs to single
// spaces. This is the identity normalization used for fact dedup; it is
// deliberately conservative (no stemming, no punctuation stripping).
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
