// Package engine holds the battle rule components: challenge selection, combo
// tracking, damage and XP math, the challenge countdown and boss escalation.
//
// None of the types here are safe for concurrent use. The battle orchestrator
// owns one of each per battle and serializes every call.
package engine
