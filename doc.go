// Package zeno defines the provider-agnostic domain types for the Zeno chat
// backend: conversation messages, completion requests, streaming events, and
// the Provider and ConversationStore interfaces that the engine, relay, and
// HTTP layer are built against.
//
// Concrete implementations live in subpackages: anthropic and gemini implement
// Provider, sqlite implements ConversationStore and DocumentStore, and mock
// provides function-field test doubles for all three.
package zeno
